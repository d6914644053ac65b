package media

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		tag        string
		want       Kind
		wantStream string
	}{
		{"Audio", KindAudio, "a"},
		{"Text", KindSubtitle, "s"},
		{"Video", KindOther, ""},
		{"General", KindOther, ""},
		{"audio", KindOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := KindOf(tt.tag)
			if got != tt.want {
				t.Errorf("KindOf(%q) = %v, want %v", tt.tag, got, tt.want)
			}
			if s := got.StreamType(); s != tt.wantStream {
				t.Errorf("KindOf(%q).StreamType() = %q, want %q", tt.tag, s, tt.wantStream)
			}
		})
	}
}
