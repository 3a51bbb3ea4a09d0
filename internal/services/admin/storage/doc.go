// Package storage defines the records listed by the admin console and the
// persistence contracts the handlers depend on.
//
// Handlers list whole record sets and hand them to the table engine; stores
// do no filtering, sorting or paging of their own.
package storage
