package core

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Money is an amount in minor units (cents).
	Money struct {
		Cents int64
	}

	// ID is an optional row identifier. The zero value is unset.
	ID struct {
		value int64
		set   bool
	}

	// Transaction is one financial event. Amounts are held as cents and read
	// back as dollars through the accessors.
	Transaction struct {
		ID          ID
		Date        time.Time
		Category    string
		Description string
		Value       Money
		CCValue     Money // amount charged to the credit card
	}
)

// NoID is the unset identifier of a transaction that was never persisted.
var NoID = ID{}

// NewID returns a set identifier.
func NewID(v int64) ID {
	return ID{value: v, set: true}
}

// Value returns the identifier and whether it is set.
func (id ID) Value() (int64, bool) {
	return id.value, id.set
}

func (id ID) IsSet() bool {
	return id.set
}

func (id ID) String() string {
	if !id.set {
		return "none"
	}
	return strconv.FormatInt(id.value, 10)
}

// NewTransaction builds a transaction from its storage form: the date as epoch
// seconds and both amounts in cents.
func NewTransaction(id ID, dateEpoch int64, category, description string, valueCents, ccValueCents int64) Transaction {
	return Transaction{
		ID:          id,
		Date:        time.Unix(dateEpoch, 0).UTC(),
		Category:    category,
		Description: description,
		Value:       Money{Cents: valueCents},
		CCValue:     Money{Cents: ccValueCents},
	}
}

// DateEpoch returns the date as seconds since the Unix epoch.
func (t Transaction) DateEpoch() int64 {
	return t.Date.Unix()
}

// ValueCents returns the value in cents.
func (t Transaction) ValueCents() int64 {
	return t.Value.Cents
}

// CCValueCents returns the credit card value in cents.
func (t Transaction) CCValueCents() int64 {
	return t.CCValue.Cents
}

// SetValueCents replaces the value with an amount given in cents.
func (t *Transaction) SetValueCents(cents int64) {
	t.Value = Money{Cents: cents}
}

// SetCCValueCents replaces the credit card value with an amount given in cents.
func (t *Transaction) SetCCValueCents(cents int64) {
	t.CCValue = Money{Cents: cents}
}

// ValueDollars returns the value in major units.
func (t Transaction) ValueDollars() decimal.Decimal {
	return t.Value.Dollars()
}

// CCValueDollars returns the credit card value in major units.
func (t Transaction) CCValueDollars() decimal.Decimal {
	return t.CCValue.Dollars()
}

// Equal reports whether every field of t and o matches. Dates are compared
// at second precision, which is what the store keeps.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.DateEpoch() == o.DateEpoch() &&
		t.Category == o.Category &&
		t.Description == o.Description &&
		t.Value == o.Value &&
		t.CCValue == o.CCValue
}
