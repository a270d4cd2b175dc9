package scan_test

import (
	"fmt"

	"gopkg.in/dfmt.v0/dec"
	"gopkg.in/dfmt.v0/scan"
)

func ExampleSscanf() {
	var (
		name  string
		age   int
		score float64
	)
	n, err := scan.Sscanf("ada 36 97.5", "%s %d %lf", scan.String(&name), scan.Int(&age), scan.Float64(&score))
	fmt.Println(n, err, name, age, score)
	// Output: 3 <nil> ada 36 97.5
}

func ExampleDecimal() {
	var price dec.Dec
	scan.Sscanf("total: 19.990 EUR", "total: %Lf EUR", scan.Decimal(&price))
	fmt.Println(&price)
	// Output: 19.990
}

func ExampleSscanf_failure() {
	var v int
	n, err := scan.Sscanf("abc", "xyz%d", scan.Int(&v))
	fmt.Println(n, err)
	// Output: -1 scan: input does not match template: want 'x' at offset 0
}
