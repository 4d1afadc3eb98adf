// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

// Denominations of the ledger's native balance unit. The base unit is the
// smallest transferable amount; one Lux is 10^9 base units.
const (
	NanoLux  uint64 = 1
	MicroLux uint64 = 1000 * NanoLux
	MilliLux uint64 = 1000 * MicroLux
	Lux      uint64 = 1000 * MilliLux
)

// RecordFunding is the balance a voter moves into a freshly created vote
// record to keep its storage alive.
const RecordFunding = 500 * MilliLux
