// Package announce evaluates announcement rules against every scored game and
// delivers the ones that fire to Slack, Teams or generic HTTP webhooks.
// Delivery happens in the background and never blocks scoring.
package announce
