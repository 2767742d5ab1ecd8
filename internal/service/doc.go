// Package service implements the business logic layer for the TesfaFund API.
//
// Services validate requests, enforce referential rules between recipients,
// campaigns and donations, and compute donation progress. They sit between
// HTTP handlers and the repositories.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with dependencies
//   - Repository interfaces are declared here so tests can supply mocks
//   - Store failures are logged and returned wrapped in ErrStoreFailure
//
// # Referential Rules
//
//   - A campaign may only be created or updated for an existing recipient
//   - A donation may only be created for an existing campaign
//   - A recipient cannot be deleted while campaigns reference it
//
// The checks are explicit precondition functions (see preconditions.go).
//
// # Campaign Events
//
// EventHub fans out donation.received and campaign.deleted events to
// per-campaign subscribers. DonationService notifies ProgressService after a
// donation is stored, and ProgressService publishes the donation together
// with the campaign's updated progress. Delivery is best-effort.
//
// # Example Usage
//
//	campaigns := NewCampaignService(CampaignServiceConfig{
//	    CampaignRepo: campaignRepository,
//	    Recipients:   recipientService,
//	})
//	campaign, err := campaigns.CreateCampaign(ctx, &model.CreateCampaignRequest{...})
package service
