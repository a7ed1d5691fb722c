package redis

import "testing"

func TestRecordKey(t *testing.T) {
	if got := RecordKey("bookmarks"); got != "termtab:record:bookmarks" {
		t.Errorf("RecordKey() = %q", got)
	}
}

func TestExtractRecordName(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "valid key", key: "termtab:record:customColors", want: "customColors"},
		{name: "prefix only", key: "termtab:record:", wantErr: true},
		{name: "foreign key", key: "other:record:abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractRecordName(tt.key)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ExtractRecordName(%q) = %q, want error", tt.key, got)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ExtractRecordName(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
			}
		})
	}
}
