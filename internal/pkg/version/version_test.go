package version

import (
	"errors"
	"testing"

	"github.com/blang/semver/v4"
)

func TestParseBump(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Bump
		wantErr bool
	}{
		{name: "patch", input: "patch", want: BumpPatch},
		{name: "minor", input: "minor", want: BumpMinor},
		{name: "major", input: "major", want: BumpMajor},
		{name: "empty string", input: "", wantErr: true},
		{name: "unknown word", input: "huge", wantErr: true},
		{name: "case sensitive", input: "Patch", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBump(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBump(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBump(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBump_String(t *testing.T) {
	if BumpPatch.String() != "patch" {
		t.Errorf("BumpPatch.String() = %q, want %q", BumpPatch.String(), "patch")
	}
	if BumpMinor.String() != "minor" {
		t.Errorf("BumpMinor.String() = %q, want %q", BumpMinor.String(), "minor")
	}
	if BumpMajor.String() != "major" {
		t.Errorf("BumpMajor.String() = %q, want %q", BumpMajor.String(), "major")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    semver.Version
		wantErr bool
	}{
		{name: "with v prefix", tag: "v1.2.3", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "without v prefix", tag: "1.2.3", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "zeros", tag: "v0.0.0", want: semver.Version{}},
		{name: "large components", tag: "v10.20.30", want: semver.Version{Major: 10, Minor: 20, Patch: 30}},
		{name: "leading zero rejected", tag: "v01.2.3", wantErr: true},
		{name: "two components", tag: "v1.2", wantErr: true},
		{name: "four components", tag: "v1.2.3.4", wantErr: true},
		{name: "prerelease suffix rejected", tag: "v1.2.3-rc1", wantErr: true},
		{name: "arbitrary tag", tag: "release-candidate", wantErr: true},
		{name: "empty", tag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if !tt.wantErr && !got.EQ(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		want    semver.Version
		wantErr error
	}{
		{
			name: "single tag",
			tags: []string{"v1.0.0"},
			want: semver.Version{Major: 1},
		},
		{
			name: "highest wins regardless of order",
			tags: []string{"v0.2.0", "v1.10.0", "v1.9.9"},
			want: semver.Version{Major: 1, Minor: 10},
		},
		{
			name: "numeric compare not lexicographic",
			tags: []string{"v1.2.0", "v1.10.0"},
			want: semver.Version{Major: 1, Minor: 10},
		},
		{
			name: "malformed tags skipped",
			tags: []string{"release-1", "v1.2", "v0.3.1", "nightly"},
			want: semver.Version{Minor: 3, Patch: 1},
		},
		{
			name: "mixed prefix forms",
			tags: []string{"1.0.0", "v2.0.0"},
			want: semver.Version{Major: 2},
		},
		{
			name:    "no tags",
			tags:    nil,
			wantErr: ErrNoTags,
		},
		{
			name:    "only malformed tags",
			tags:    []string{"latest", "v1.2.3-beta", "build-42"},
			wantErr: ErrNoTags,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Latest(tt.tags)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Latest(%v) error = %v, want %v", tt.tags, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Latest(%v) error = %v", tt.tags, err)
			}
			if !got.EQ(tt.want) {
				t.Errorf("Latest(%v) = %v, want %v", tt.tags, got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		v    semver.Version
		bump Bump
		want semver.Version
	}{
		{
			name: "patch increments last component",
			v:    semver.Version{Minor: 1, Patch: 2},
			bump: BumpPatch,
			want: semver.Version{Minor: 1, Patch: 3},
		},
		{
			name: "minor zeroes patch",
			v:    semver.Version{Minor: 1, Patch: 2},
			bump: BumpMinor,
			want: semver.Version{Minor: 2},
		},
		{
			name: "major zeroes minor and patch",
			v:    semver.Version{Major: 1, Minor: 2, Patch: 3},
			bump: BumpMajor,
			want: semver.Version{Major: 2},
		},
		{
			name: "patch on zero version",
			v:    semver.Version{},
			bump: BumpPatch,
			want: semver.Version{Patch: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.v, tt.bump)
			if !got.EQ(tt.want) {
				t.Errorf("Apply(%v, %v) = %v, want %v", tt.v, tt.bump, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	got := Format(semver.Version{Major: 1, Minor: 2, Patch: 3})
	if got != "v1.2.3" {
		t.Errorf("Format() = %q, want %q", got, "v1.2.3")
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		bump Bump
		want string
	}{
		{
			name: "patch bump",
			tags: []string{"v0.1.2"},
			bump: BumpPatch,
			want: "v0.1.3",
		},
		{
			name: "minor bump",
			tags: []string{"v0.1.2"},
			bump: BumpMinor,
			want: "v0.2.0",
		},
		{
			name: "major bump",
			tags: []string{"v1.2.3"},
			bump: BumpMajor,
			want: "v2.0.0",
		},
		{
			name: "no tags yields baseline without bump",
			tags: nil,
			bump: BumpMajor,
			want: "v0.1.0",
		},
		{
			name: "only malformed tags yields baseline",
			tags: []string{"nightly", "v1.2.3-rc1"},
			bump: BumpPatch,
			want: "v0.1.0",
		},
		{
			name: "bump applies to highest tag not last listed",
			tags: []string{"v2.0.0", "v1.9.0"},
			bump: BumpPatch,
			want: "v2.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.tags, tt.bump)
			if got != tt.want {
				t.Errorf("Next(%v, %v) = %q, want %q", tt.tags, tt.bump, got, tt.want)
			}
		})
	}
}
