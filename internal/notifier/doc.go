// Package notifier assembles and delivers the failed pull-request build
// notification.
//
// A notification is addressed to the reference name <ACTOR>_WEBHOOK. The name
// is handed to a Resolver; when it resolves, the resulting URL is the
// destination, otherwise the name itself is forwarded to the transport
// untouched. Delivery is best-effort by default: a failed transport call is
// recorded in the Report but not returned as an error.
package notifier
