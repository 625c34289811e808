// Package logistics implements the shipment workflow on top of storage: quoting and
// booking shipments against inventory, advancing their status, running the container
// optimizer and producing financial reports.
package logistics
