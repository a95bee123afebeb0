package models

import "fmt"

// SuccessMessage is the line printed when a check finds a price.
func SuccessMessage(product, price string) string {
	return fmt.Sprintf("Success!\nHere are the prices for %s: %s", product, price)
}

// FailureMessage is the line printed when the search did not succeed.
func FailureMessage(product string) string {
	return fmt.Sprintf("Failed to Search for %s", product)
}
