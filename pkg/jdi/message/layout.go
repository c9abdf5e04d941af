package message

import "reflect"

// Base layouts. Every layout name maps onto one of these.
const (
	LayoutNull    = "null"
	LayoutBoolean = "boolean"
	LayoutInteger = "integer"
	LayoutDouble  = "double"
	LayoutString  = "string"
	LayoutArray   = "array"
	LayoutHash    = "hash"
)

// baseLayouts maps every known layout name to its base layout.
var baseLayouts = map[string]string{
	LayoutNull:    LayoutNull,
	LayoutBoolean: LayoutBoolean,
	LayoutInteger: LayoutInteger,
	LayoutDouble:  LayoutDouble,
	LayoutString:  LayoutString,
	LayoutArray:   LayoutArray,
	LayoutHash:    LayoutHash,
	"decimal":     LayoutDouble,
	"vector":      LayoutArray,
	"list":        LayoutArray,
	"document":    LayoutHash,
	"record":      LayoutHash,
	"recordset":   LayoutHash,
	"schema":      LayoutHash,
}

// BaseLayout returns the base layout for a layout name, and false if the
// name is not a known layout.
func BaseLayout(layout string) (string, bool) {
	base, ok := baseLayouts[layout]
	return base, ok
}

// DetectLayout returns the base layout matching the Go type of payload,
// or "" if the type has no layout.
func DetectLayout(payload any) string {
	if payload == nil {
		return LayoutNull
	}
	switch reflect.TypeOf(payload).Kind() {
	case reflect.Bool:
		return LayoutBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return LayoutInteger
	case reflect.Float32, reflect.Float64:
		return LayoutDouble
	case reflect.String:
		return LayoutString
	case reflect.Slice, reflect.Array:
		return LayoutArray
	case reflect.Map:
		return LayoutHash
	}
	return ""
}

// statusText is the base status message table.
var statusText = map[int]string{
	StatusOK:                "Ok",
	StatusNoData:            "No Data",
	StatusNoChange:          "No Change",
	StatusNotAuthorized:     "Not Authorized",
	StatusInvalidRequest:    "Invalid Request",
	StatusServerUnavailable: "Server Unavailable",
	StatusRetrievalError:    "Retrieval Error",
	StatusUnknownError:      "Unknown Error",
}

// Response status codes.
const (
	StatusOK                = 0
	StatusNoData            = 1
	StatusNoChange          = 2
	StatusNotAuthorized     = 10
	StatusInvalidRequest    = 11
	StatusServerUnavailable = 30
	StatusRetrievalError    = 31
	StatusUnknownError      = 99
)

// StatusText returns the text for a status code, or "" if unknown.
func StatusText(code int) string {
	return statusText[code]
}
