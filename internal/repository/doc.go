// Package repository defines the data access interfaces for sellerstore.
//
// This package provides the repository abstraction layer for persisting
// and retrieving sellers and departments. The SQL implementation is in the
// sqlstore subpackage.
//
// # Repository Interfaces
//
// SellerRepository covers insert, update, delete and the three joined
// lookups (by id, all, by department). DepartmentRepository covers the
// read-mostly department reference table.
//
// # Connections
//
// Implementations run on a DBTX supplied by the caller, so the same code
// works on a pool, a single connection or a transaction. Repositories never
// close the DBTX; they release only the statements and result sets they open.
//
// # Errors
//
// Every data-access failure is returned as *StoreError carrying the driver's
// message unchanged. Update and delete affecting zero rows are not errors.
// A missing seller or department is reported as a nil result, not an error.
package repository
