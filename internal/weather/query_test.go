package weather

import "testing"

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Query
		wantErr bool
	}{
		{"plain", "Paris", "Paris", false},
		{"leading and trailing spaces", "  Paris  ", "Paris", false},
		{"tabs and newlines", "\tNew York\n", "New York", false},
		{"inner whitespace kept", " Rio  de Janeiro ", "Rio  de Janeiro", false},
		{"empty", "", "", true},
		{"spaces only", "    ", "", true},
		{"mixed whitespace only", " \t\r\n ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewQuery(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewQuery(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				if !IsEmptyInput(err) {
					t.Errorf("NewQuery(%q) error = %v, want ErrEmptyInput", tt.raw, err)
				}
				if err.Error() != EmptyQueryMessage {
					t.Errorf("error message = %q, want %q", err.Error(), EmptyQueryMessage)
				}
				return
			}
			if got != tt.want {
				t.Errorf("NewQuery(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
