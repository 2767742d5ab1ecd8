// Package fixtures provides test data factories for the TesfaFund API.
//
// # Factory Pattern
//
//	f := fixtures.New(testDB)
//
// # Creating Test Data
//
//	recipient := f.CreateRecipient(t)
//	campaign := f.CreateCampaign(t, recipient, fixtures.WithGoal(5000))
//	f.CreateDonation(t, campaign, fixtures.WithAmount(250))
//
// Factories fail the test on any insert error, so callers can rely on the
// returned models being persisted.
package fixtures
