package postgresengine

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // register the postgres dialect
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

func qualified(alias, column string) string {
	return alias + "." + column
}

func (s *Store) buildCheckoutStateQuery(bookID uuid.UUID) (string, []any, error) {
	builder := goqu.Dialect(dialectPostgres)

	return builder.
		From(s.tables.books.As(aliasBooks)).
		LeftOuterJoin(
			s.tables.checkouts.As(aliasCheckouts),
			goqu.On(goqu.I(qualified(aliasBooks, colBookID)).Eq(goqu.I(qualified(aliasCheckouts, colBookID)))),
		).
		Select(
			goqu.I(qualified(aliasBooks, colBookID)),
			goqu.I(qualified(aliasCheckouts, colCheckoutID)),
			goqu.I(qualified(aliasCheckouts, colUserID)),
			goqu.I(qualified(aliasCheckouts, colCheckedOutAt)),
		).
		Where(goqu.I(qualified(aliasBooks, colBookID)).Eq(bookID.String())).
		Prepared(true).
		ToSQL()
}

func (s *Store) buildInsertCheckoutQuery(checkoutID uuid.UUID, command lending.CreateCheckout) (string, []any, error) {
	builder := goqu.Dialect(dialectPostgres)

	return builder.
		Insert(s.tables.checkouts).
		Cols(colCheckoutID, colBookID, colUserID, colCheckedOutAt).
		Vals(goqu.Vals{
			checkoutID.String(),
			command.BookID.String(),
			command.BorrowerID.String(),
			command.CheckedOutAt,
		}).
		Prepared(true).
		ToSQL()
}

// The returned row is copied from the active checkout, so the original checkout time survives the move.
func (s *Store) buildInsertReturnedCheckoutQuery(command lending.ReturnCheckout) (string, []any, error) {
	builder := goqu.Dialect(dialectPostgres)

	source := builder.
		From(s.tables.checkouts).
		Select(
			goqu.C(colCheckoutID),
			goqu.C(colBookID),
			goqu.C(colUserID),
			goqu.C(colCheckedOutAt),
			goqu.L(castTimestamp, command.ReturnedAt),
		).
		Where(goqu.C(colCheckoutID).Eq(command.CheckoutID.String()))

	return builder.
		Insert(s.tables.returnedCheckouts).
		Cols(colCheckoutID, colBookID, colUserID, colCheckedOutAt, colReturnedAt).
		FromQuery(source).
		Prepared(true).
		ToSQL()
}

func (s *Store) buildDeleteCheckoutQuery(checkoutID uuid.UUID) (string, []any, error) {
	builder := goqu.Dialect(dialectPostgres)

	return builder.
		Delete(s.tables.checkouts).
		Where(goqu.C(colCheckoutID).Eq(checkoutID.String())).
		Prepared(true).
		ToSQL()
}

// buildBookCheckoutQuery reads the book with its active checkout columns, which are NULL when the book is available.
func (s *Store) buildBookCheckoutQuery(bookID uuid.UUID) (string, []any, error) {
	builder := goqu.Dialect(dialectPostgres)

	return builder.
		From(s.tables.books.As(aliasBooks)).
		LeftOuterJoin(
			s.tables.checkouts.As(aliasCheckouts),
			goqu.On(goqu.I(qualified(aliasBooks, colBookID)).Eq(goqu.I(qualified(aliasCheckouts, colBookID)))),
		).
		Select(
			goqu.I(qualified(aliasCheckouts, colCheckoutID)),
			goqu.I(qualified(aliasCheckouts, colUserID)),
			goqu.I(qualified(aliasCheckouts, colCheckedOutAt)),
			goqu.I(qualified(aliasBooks, colBookID)),
			goqu.I(qualified(aliasBooks, colTitle)),
			goqu.I(qualified(aliasBooks, colAuthor)),
			goqu.I(qualified(aliasBooks, colISBN)),
		).
		Where(goqu.I(qualified(aliasBooks, colBookID)).Eq(bookID.String())).
		Prepared(true).
		ToSQL()
}

// activeFilter narrows the active checkouts query, nil means all active checkouts.
type activeFilter struct {
	column string
	id     uuid.UUID
}

func (s *Store) buildActiveCheckoutsQuery(filter *activeFilter) (string, []any, error) {
	builder := goqu.Dialect(dialectPostgres)

	query := builder.
		From(s.tables.checkouts.As(aliasCheckouts)).
		InnerJoin(
			s.tables.books.As(aliasBooks),
			goqu.On(goqu.I(qualified(aliasCheckouts, colBookID)).Eq(goqu.I(qualified(aliasBooks, colBookID)))),
		).
		Select(
			goqu.I(qualified(aliasCheckouts, colCheckoutID)),
			goqu.I(qualified(aliasCheckouts, colUserID)),
			goqu.I(qualified(aliasCheckouts, colCheckedOutAt)),
			goqu.I(qualified(aliasBooks, colBookID)),
			goqu.I(qualified(aliasBooks, colTitle)),
			goqu.I(qualified(aliasBooks, colAuthor)),
			goqu.I(qualified(aliasBooks, colISBN)),
		)

	if filter != nil {
		query = query.Where(goqu.I(qualified(aliasCheckouts, filter.column)).Eq(filter.id.String()))
	}

	return query.
		Order(
			goqu.I(qualified(aliasCheckouts, colCheckedOutAt)).Asc(),
			goqu.I(qualified(aliasCheckouts, colCheckoutID)).Asc(),
		).
		Prepared(true).
		ToSQL()
}

// buildHistoryForBookQuery reads the active and the returned checkouts of a book in one statement,
// so a concurrent return can neither duplicate nor drop a checkout.
func (s *Store) buildHistoryForBookQuery(bookID uuid.UUID) (string, []any, error) {
	builder := goqu.Dialect(dialectPostgres)

	active := builder.
		From(s.tables.checkouts.As(aliasCheckouts)).
		InnerJoin(
			s.tables.books.As(aliasBooks),
			goqu.On(goqu.I(qualified(aliasCheckouts, colBookID)).Eq(goqu.I(qualified(aliasBooks, colBookID)))),
		).
		Select(
			goqu.I(qualified(aliasCheckouts, colCheckoutID)).As(colCheckoutID),
			goqu.I(qualified(aliasCheckouts, colUserID)).As(colUserID),
			goqu.I(qualified(aliasCheckouts, colCheckedOutAt)).As(colCheckedOutAt),
			goqu.L(nullTimestamp).As(colReturnedAt),
			goqu.I(qualified(aliasBooks, colBookID)).As(colBookID),
			goqu.I(qualified(aliasBooks, colTitle)).As(colTitle),
			goqu.I(qualified(aliasBooks, colAuthor)).As(colAuthor),
			goqu.I(qualified(aliasBooks, colISBN)).As(colISBN),
		).
		Where(goqu.I(qualified(aliasCheckouts, colBookID)).Eq(bookID.String()))

	returned := builder.
		From(s.tables.returnedCheckouts.As(aliasReturnedCheckouts)).
		InnerJoin(
			s.tables.books.As(aliasBooks),
			goqu.On(goqu.I(qualified(aliasReturnedCheckouts, colBookID)).Eq(goqu.I(qualified(aliasBooks, colBookID)))),
		).
		Select(
			goqu.I(qualified(aliasReturnedCheckouts, colCheckoutID)),
			goqu.I(qualified(aliasReturnedCheckouts, colUserID)),
			goqu.I(qualified(aliasReturnedCheckouts, colCheckedOutAt)),
			goqu.I(qualified(aliasReturnedCheckouts, colReturnedAt)),
			goqu.I(qualified(aliasBooks, colBookID)),
			goqu.I(qualified(aliasBooks, colTitle)),
			goqu.I(qualified(aliasBooks, colAuthor)),
			goqu.I(qualified(aliasBooks, colISBN)),
		).
		Where(goqu.I(qualified(aliasReturnedCheckouts, colBookID)).Eq(bookID.String()))

	return builder.
		From(active.UnionAll(returned).As(aliasHistory)).
		Select(colCheckoutID, colUserID, colCheckedOutAt, colReturnedAt, colBookID, colTitle, colAuthor, colISBN).
		Order(
			goqu.L(isNotNull, goqu.C(colReturnedAt)).Asc(),
			goqu.C(colCheckedOutAt).Asc(),
			goqu.C(colCheckoutID).Asc(),
		).
		Prepared(true).
		ToSQL()
}
