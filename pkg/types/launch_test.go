package types

import "testing"

func TestBucketFor_Boundaries(t *testing.T) {
	cases := []struct {
		kg    float64
		index int
	}{
		{0, 0},
		{500, 0},
		{2000, 0},
		{2000.01, 1},
		{4000, 1},
		{4000.5, 2},
		{6000, 2},
		{8000, 3},
		{9999, 4},
		{10000, 4},
	}
	for _, c := range cases {
		b, ok := BucketFor(c.kg)
		if !ok {
			t.Errorf("BucketFor(%v): not ok", c.kg)
			continue
		}
		if b.Index != c.index {
			t.Errorf("BucketFor(%v): got index %d, want %d", c.kg, b.Index, c.index)
		}
	}
}

func TestBucketFor_OutsideAxis(t *testing.T) {
	for _, kg := range []float64{-1, 10000.1, 15600} {
		if _, ok := BucketFor(kg); ok {
			t.Errorf("BucketFor(%v): want not ok", kg)
		}
	}
}

func TestBucketFor_CoverageIsTotalAndDisjoint(t *testing.T) {
	buckets := Buckets()
	for kg := 0.0; kg <= BucketAxisMax; kg += 250 {
		hits := 0
		for _, b := range buckets {
			in := kg > b.Low && kg <= b.High
			if b.Index == 0 {
				in = kg >= b.Low && kg <= b.High
			}
			if in {
				hits++
			}
		}
		if hits != 1 {
			t.Errorf("payload %v falls in %d buckets, want exactly 1", kg, hits)
		}
		got, _ := BucketFor(kg)
		if got.Low > kg || got.High < kg {
			t.Errorf("BucketFor(%v) = %s, does not contain payload", kg, got.Label)
		}
	}
}

func TestBuckets_Labels(t *testing.T) {
	want := []string{"0-2000 kg", "2000-4000 kg", "4000-6000 kg", "6000-8000 kg", "8000-10000 kg"}
	got := Buckets()
	if len(got) != len(want) {
		t.Fatalf("Buckets: got %d, want %d", len(got), len(want))
	}
	for i, b := range got {
		if b.Label != want[i] {
			t.Errorf("bucket %d label: got %q, want %q", i, b.Label, want[i])
		}
	}
}

func TestPayloadRange_ContainsInclusive(t *testing.T) {
	r := PayloadRange{Low: 1000, High: 3000}
	for kg, want := range map[float64]bool{999: false, 1000: true, 2000: true, 3000: true, 3001: false} {
		if got := r.Contains(kg); got != want {
			t.Errorf("Contains(%v): got %v, want %v", kg, got, want)
		}
	}
}

func TestSelection_MatchesSite(t *testing.T) {
	all := Selection{Site: SiteAll}
	if !all.MatchesSite("CCAFS LC-40") {
		t.Error("ALL should match every site")
	}
	one := Selection{Site: "KSC LC-39A"}
	if one.MatchesSite("CCAFS LC-40") {
		t.Error("single-site selection matched another site")
	}
	if !one.MatchesSite("KSC LC-39A") {
		t.Error("single-site selection did not match its own site")
	}
}
