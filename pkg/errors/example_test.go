package errors_test

import (
	"fmt"
	"io"

	"github.com/ajitpratap0/tabular/pkg/errors"
)

// Example demonstrates basic error creation with details.
func Example() {
	err := errors.New(errors.ErrorTypeNotFound, "unknown column").
		WithDetail("column", "humidity")

	fmt.Println(err.Error())

	// Output:
	// not_found: unknown column
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	err := errors.Wrap(io.ErrUnexpectedEOF, errors.ErrorTypeFile, "failed to read CSV file").
		WithDetail("file", "weather.csv")

	if errors.IsType(err, errors.ErrorTypeFile) {
		fmt.Println("file error")
	}
	fmt.Println(err)

	// Output:
	// file error
	// file: failed to read CSV file: unexpected EOF
}

// ExampleDetail shows how callers read diagnostic details.
func ExampleDetail() {
	err := errors.New(errors.ErrorTypeValidation, "inconsistent row length").
		WithDetail("rows", []int{2, 5})

	rows, ok := errors.Detail(err, "rows")
	fmt.Println(rows, ok)

	// Output:
	// [2 5] true
}
