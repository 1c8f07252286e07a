package urls

import "testing"

func TestIconURL(t *testing.T) {
	if got := IconURL("04d"); got != "https://openweathermap.org/img/wn/04d@2x.png" {
		t.Errorf("IconURL(04d) = %s", got)
	}
	if got := IconURL(""); got != "" {
		t.Errorf("IconURL(\"\") = %s, want empty", got)
	}
}
