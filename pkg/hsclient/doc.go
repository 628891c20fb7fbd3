// Package hsclient provides the main entry point for creating HubSpot CRM
// API clients.
//
// A Client is built once per credential and handed out per object kind:
//
//	cli, err := hsclient.New(&hubspot.Config{
//	  Domain:   "api.hubapi.com",
//	  Token:    os.Getenv("HUBSPOT_TOKEN"),
//	  PortalID: os.Getenv("HUBSPOT_PORTAL_ID"),
//	})
//	if err != nil { log.Fatal(err) }
//
//	deals := hsclient.Basic[DealProperties, hubspot.OptionNotDesired, hubspot.OptionNotDesired](cli.Deals())
//	deal, err := deals.Read(ctx, "77", nil)
//
// Every handle returned by a Client shares its transport, so handles are
// cheap to create and safe to use from several goroutines.
package hsclient
