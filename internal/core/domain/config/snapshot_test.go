package configdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_Merge_PriorityWins(t *testing.T) {
	tests := []struct {
		name       string
		existing   Entry
		incoming   Entry
		wantSource string
	}{
		{
			name:       "higher_priority_overwrites",
			existing:   Entry{Key: "CACHE_TTL", Value: "1800", Source: SourceDefault, Priority: PriorityDefault},
			incoming:   Entry{Key: "CACHE_TTL", Value: "600", Source: SourceFile, Priority: PriorityFile},
			wantSource: SourceFile,
		},
		{
			name:       "lower_priority_is_ignored",
			existing:   Entry{Key: "CACHE_TTL", Value: "600", Source: SourceOverride, Priority: PriorityOverride},
			incoming:   Entry{Key: "CACHE_TTL", Value: "1800", Source: SourceProfile, Priority: PriorityProfile},
			wantSource: SourceOverride,
		},
		{
			name:       "equal_priority_later_wins",
			existing:   Entry{Key: "CACHE_TTL", Value: "600", Source: SourceFile, SourcePath: "a.conf", Priority: PriorityFile},
			incoming:   Entry{Key: "CACHE_TTL", Value: "900", Source: SourceFile, SourcePath: "b.conf", Priority: PriorityFile},
			wantSource: SourceFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{tt.existing.Key: tt.existing}
			snap.Merge(Snapshot{tt.incoming.Key: tt.incoming})

			got := snap[tt.incoming.Key]
			assert.Equal(t, tt.wantSource, got.Source)
			if tt.existing.Priority == tt.incoming.Priority {
				assert.Equal(t, tt.incoming.SourcePath, got.SourcePath, "ties should go to the incoming entry")
			}
		})
	}
}

func TestSnapshot_Merge_NewKeysAlwaysLand(t *testing.T) {
	snap := Snapshot{}
	snap.Merge(Snapshot{"LOG_LEVEL": {Key: "LOG_LEVEL", Value: "WARN", Priority: PriorityProfile}})

	assert.Len(t, snap, 1)
	assert.Equal(t, "WARN", snap["LOG_LEVEL"].Value)
}

func TestSnapshot_Clone_IsIndependent(t *testing.T) {
	snap := Snapshot{"LOG_LEVEL": {Key: "LOG_LEVEL", Value: "WARN"}}
	clone := snap.Clone()
	clone["LOG_LEVEL"] = Entry{Key: "LOG_LEVEL", Value: "ERROR"}

	assert.Equal(t, "WARN", snap["LOG_LEVEL"].Value)
}

func TestPrecedencePolicy_Priorities(t *testing.T) {
	assert.Equal(t, PriorityFile, EnvOverFile.FilePriority())
	assert.Equal(t, PriorityEnvironment, EnvOverFile.EnvPriority())

	// The alternate policy swaps the two without touching overrides,
	// profiles or defaults.
	assert.Equal(t, PriorityEnvironment, FileOverEnv.FilePriority())
	assert.Equal(t, PriorityFile, FileOverEnv.EnvPriority())

	assert.Less(t, PriorityOverride, FileOverEnv.FilePriority())
	assert.Less(t, FileOverEnv.EnvPriority(), PriorityProfile)
}
