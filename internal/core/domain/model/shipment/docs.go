// Package shipment contains the Shipment aggregate and its status workflow.
//
// A shipment is created Pending (or In Transit), may move between the two active
// statuses and ends as Delivered or Cancelled. The aggregate owns the rules of that
// lifecycle and the actualDelivery invariant; the effect on the assigned fleet
// vehicle is reported through StatusChange so the application layer can apply it
// in the same transaction.
//
// Domain events (Created, StatusChanged, Deleted) accumulate on the aggregate and
// are collected by the unit of work after a successful commit.
package shipment
