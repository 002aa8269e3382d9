// Package handler is the first layer after the router.
//
// It binds requests, validates them with the validation package, calls
// the service layer and renders the outcome through the response package.
package handler
