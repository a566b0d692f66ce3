// Package service contains the business logic.
//
// It sits between the handler layer and the lvr core: handlers pass in
// bound payloads, services run the rules and log the outcome.
package service
