package httpapi

import (
	"github.com/alexdb/alexdb/internal/store/value"
)

// ValuePost is the POST /values request body.
type ValuePost struct {
	Key   string      `json:"key"`
	Value value.Value `json:"value"`
	TTL   *int64      `json:"ttl,omitempty"`
}

// ValuePut is the PUT /values/{key} request body.
type ValuePut struct {
	Value value.Value `json:"value"`
	TTL   *int64      `json:"ttl,omitempty"`
}

// ValueAppend is the PUT /values/{key}/append request body.
type ValueAppend struct {
	Append value.Value `json:"append"`
}

// ValuePrepend is the PUT /values/{key}/prepend request body.
type ValuePrepend struct {
	Prepend value.Value `json:"prepend"`
}

// ValuePopBack is the PUT /values/{key}/pop-back request body.
type ValuePopBack struct {
	PopBack *int `json:"pop_back,omitempty"`
}

// ValuePopFront is the PUT /values/{key}/pop-front request body.
type ValuePopFront struct {
	PopFront *int `json:"pop_front,omitempty"`
}

// ValueIncrement is the PUT /values/{key}/increment request body.
type ValueIncrement struct {
	Increment *int64 `json:"increment,omitempty"`
}

// ValueDecrement is the PUT /values/{key}/decrement request body.
type ValueDecrement struct {
	Decrement *int64 `json:"decrement,omitempty"`
}

// QueryParams binds GET /values's query string.
type QueryParams struct {
	Direction string `form:"direction"`
	Sort      string `form:"sort"`
	Limit     *int   `form:"limit"`
	Page      *int   `form:"page"`
	StartsAt  *int64 `form:"starts_at"`
	EndsAt    *int64 `form:"ends_at"`
}
