// Package seed loads demo data for TesfaFund from a YAML document.
//
// A seed file lists recipients, campaigns and donations. Entries are checked
// with the same field rules as the HTTP API, references are resolved within
// the file, and everything is inserted in one SurrealDB transaction.
//
//	recipients:
//	  - id: 5d1f0c1e-7d0b-4a6f-9a53-0c6f4f3b1a01
//	    first_name: Abebe
//	    last_name: Bikila
//	    email: abebe@example.org
//	campaigns:
//	  - id: 9b0f7f6e-2c4a-4d59-8f43-6b2f8e1d0c02
//	    title: School fees
//	    fundraising_goal: 10000
//	    recipient_id: 5d1f0c1e-7d0b-4a6f-9a53-0c6f4f3b1a01
package seed
