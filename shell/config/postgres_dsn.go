package config

import (
	"net"
	"net/url"
	"strconv"
)

// PrimaryDSN returns the connection URL of the primary database.
func (c DatabaseConfig) PrimaryDSN() string {
	return c.dsn(c.Host)
}

// ReplicaDSN returns the connection URL of the read replica, empty without a replica.
func (c DatabaseConfig) ReplicaDSN() string {
	if !c.HasReplica() {
		return ""
	}

	return c.dsn(c.ReplicaHost)
}

func (c DatabaseConfig) dsn(host string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     net.JoinHostPort(host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}

	return u.String()
}
