// Package repository implements the data access layer for the TesfaFund API.
//
// Each repository struct handles one collection (recipient, campaign,
// donation) in SurrealDB.
//
// # Repository Pattern
//
//   - Constructor function (NewXxxRepository) accepts a database.Database
//   - Getters return (nil, nil) when the record does not exist
//   - Replace and Delete return the number of documents affected
//   - Results are parsed from generic maps into model structs
//
// # Record IDs
//
// Records are addressed with type::thing("<table>", $id); the API only ever
// sees the UUID key, never the table prefix.
//
// # Guarded Writes
//
// Writes that reference another record (campaign -> recipient,
// donation -> campaign) run inside a transaction whose first statement
// THROWs when the referenced record is absent. The driver reports that as
// database.ErrMissingReference.
//
// # Example Usage
//
//	repo := NewCampaignRepository(db)
//	campaign, err := repo.GetByID(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if campaign == nil {
//	    // Handle not found
//	}
package repository
