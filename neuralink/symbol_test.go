package neuralink

import "testing"

func TestEncodeSample(t *testing.T) {
	tests := []struct {
		name string
		in   int16
		want uint16
	}{
		{"zero", 0, 512},
		{"positive", 32, 512},
		{"negative", -32, 511},
		{"min", -32768, 0},
		{"max", 32767, 1023},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeSample(tt.in); got != tt.want {
				t.Fatalf("EncodeSample(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuantizationRoundtrip(t *testing.T) {
	// §8 "Quantization": for all u in [0, 1023],
	// EncodeSample(DecodeSample(u)) == u.
	for u := uint16(0); u < 1024; u++ {
		sample := DecodeSample(u)
		if got := EncodeSample(sample); got != u {
			t.Fatalf("EncodeSample(DecodeSample(%d)=%d) = %d, want %d", u, sample, got, u)
		}
	}
}

func TestDecodeSampleAlternatingFixture(t *testing.T) {
	// §8 scenario 4 uses samples +32/-32 (symbols 512/511). -32 sits on
	// the reconstruction point of symbol 511 and dequantizes back to
	// itself; +32 does not (symbol 512 dequantizes to 31).
	if got := DecodeSample(511); got != -32 {
		t.Fatalf("DecodeSample(511) = %d, want -32", got)
	}
}
