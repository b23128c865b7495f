package repo

import (
	"strings"
	"testing"
)

const sampleCSV = `id,shop_name,status,drop_off,status_date,created_at,cost
ro-1,"Acme Repair, TX",COMPLETED,2026-03-01,2026-03-12,2026-03-01,420.50
ro-2,"Acme Repair, TX",IN PROGRESS,2026-05-20,2026-05-20,2026-05-20,100
,orphaned row without id,NEW,,,,
ro-3,Beta Garage,RECEIVED,2026-04-01T09:30:00Z,2026-04-10T17:00:00Z,2026-04-01T09:30:00Z,99.99
ro-4,Short Row,NEW
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	rows, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	// header skipped, id-less and short rows dropped
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	r := rows[0]
	if r.ID != "ro-1" || r.ShopName != "Acme Repair, TX" || r.Status != "COMPLETED" {
		t.Fatalf("row 0 = %+v", r)
	}
	if r.DropOff == nil || r.StatusDate == nil {
		t.Fatal("dates not parsed")
	}
	if d := r.StatusDate.Sub(*r.DropOff).Hours() / 24; d != 11 {
		t.Fatalf("turnaround = %v days, want 11", d)
	}
	if r.Cost != 420.50 {
		t.Fatalf("cost = %v", r.Cost)
	}

	// RFC3339 timestamps also accepted
	if rows[2].ID != "ro-3" || rows[2].DropOff == nil {
		t.Fatalf("row 2 = %+v", rows[2])
	}
}

func TestReadCSV_EmptyAndHeaderOnly(t *testing.T) {
	t.Parallel()

	rows, err := ReadCSV(strings.NewReader(""))
	if err != nil || len(rows) != 0 {
		t.Fatalf("empty input = (%v, %v)", rows, err)
	}

	rows, err = ReadCSV(strings.NewReader("id,shop_name,status,drop_off,status_date,created_at,cost\n"))
	if err != nil || len(rows) != 0 {
		t.Fatalf("header only = (%v, %v)", rows, err)
	}
}
