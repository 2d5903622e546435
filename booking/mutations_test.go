package booking

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestReserveSlotFilterGuardsBookedSlot(t *testing.T) {
	filter := reserveSlotFilter("d123", "20_1_2025", "10:00 AM")

	if got := filter["docid"]; got != "d123" {
		t.Fatalf("docid = %v; want d123", got)
	}
	if got := filter["available"]; got != true {
		t.Fatal("filter must only match doctors taking appointments")
	}

	guard, ok := filter["slots_booked.20_1_2025"].(bson.M)
	if !ok {
		t.Fatalf("no guard on slots_booked.20_1_2025: %v", filter)
	}
	if guard["$ne"] != "10:00 AM" {
		t.Fatalf("guard = %v; want $ne 10:00 AM", guard)
	}

	// The $ne guard is what makes booking atomic: a document where the time
	// is already in the day's array does not match, so a second concurrent
	// UpdateOne for the same slot modifies nothing.
	booked := []string{"10:00 AM", "2:30 PM"}
	matches := true
	for _, b := range booked {
		if b == guard["$ne"] {
			matches = false
		}
	}
	if matches {
		t.Fatal("filter matched a doctor whose day already holds the slot")
	}

	free := []string{"2:30 PM"}
	matches = true
	for _, b := range free {
		if b == guard["$ne"] {
			matches = false
		}
	}
	if !matches {
		t.Fatal("filter rejected a doctor with the slot still free")
	}
}

func TestReserveSlotUpdateAppendsTime(t *testing.T) {
	update := reserveSlotUpdate("20_1_2025", "10:00 AM")

	push, ok := update["$push"].(bson.M)
	if !ok {
		t.Fatalf("no $push in %v", update)
	}
	if push["slots_booked.20_1_2025"] != "10:00 AM" {
		t.Fatalf("$push = %v; want slots_booked.20_1_2025 -> 10:00 AM", push)
	}
}

func TestReleaseSlotUpdateFreesTime(t *testing.T) {
	update := releaseSlotUpdate("20_1_2025", "10:00 AM")

	pull, ok := update["$pull"].(bson.M)
	if !ok {
		t.Fatalf("no $pull in %v", update)
	}
	if pull["slots_booked.20_1_2025"] != "10:00 AM" {
		t.Fatalf("$pull = %v; want slots_booked.20_1_2025 -> 10:00 AM", pull)
	}

	// Cancel and booking rollback share this mutation; after the $pull the
	// day's array no longer holds the time, so the reserve filter matches
	// again and the slot is bookable.
	filter := reserveSlotFilter("d123", "20_1_2025", "10:00 AM")
	guard := filter["slots_booked.20_1_2025"].(bson.M)
	if guard["$ne"] != pull["slots_booked.20_1_2025"] {
		t.Fatal("release and reserve must address the same slot value")
	}
}
