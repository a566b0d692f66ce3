// Package commands implements the lvr command line client.
//
// Every command talks to a running calculator service, selected with
// --server (default http://localhost:3001). Loan applications are given
// as field=value arguments using the API field names:
//
//	lvr calc loanAmount=500000 cashOutAmount=50000 estimatedPropertyValue=700000
//	lvr validate loanAmount=1000 estimatedPropertyValue=200000
//	lvr example
//	lvr health
//
// The form command reads field=value lines from stdin and prints the form
// state after each change, like the web form does while typing.
package commands
