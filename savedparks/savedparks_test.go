package savedparks

import "testing"

func TestNewRecordNormalizesKey(t *testing.T) {
	record := NewRecord("u1", "  YOSE ", "Yosemite")

	if record.Key != "yose" {
		t.Errorf("Key = %q, want yose", record.Key)
	}
	if record.Park != "Yosemite" {
		t.Errorf("Park = %q, want Yosemite", record.Park)
	}
	if record.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", record.UserID)
	}
	if record.RecordID == "" {
		t.Error("RecordID should be assigned")
	}
}

func TestNewRecordLabelDefaultsToKey(t *testing.T) {
	record := NewRecord("u1", "GRCA", "  ")
	if record.Park != "grca" {
		t.Errorf("Park = %q, want the normalized key as default label", record.Park)
	}
}

func TestNewRecordCaseInsensitiveKeyEquality(t *testing.T) {
	a := NewRecord("u1", "yose", "")
	b := NewRecord("u1", "YOSE", "")
	if a.Key != b.Key {
		t.Errorf("keys %q and %q should collide — same park, same user", a.Key, b.Key)
	}
}
