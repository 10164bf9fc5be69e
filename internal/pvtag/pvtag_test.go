package pvtag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "foo-v0.1.0", Format("foo", "0.1.0"))
	assert.Equal(t, "foo-v*", MatchGlob("foo"))
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		pname   string
		want    Ref
		wantErr bool
	}{
		{
			name:  "plain tag",
			tag:   "foo-v0.1.0",
			pname: "foo",
			want:  Ref{Project: "foo", Version: "0.1.0"},
		},
		{
			name:  "describe output",
			tag:   "foo-v0.1.0-2-gcaffe00",
			pname: "foo",
			want:  Ref{Project: "foo", Version: "0.1.0", DescID: "2-gcaffe00"},
		},
		{
			name:  "pre-release version",
			tag:   "foo-v1.6.2b0",
			pname: "foo",
			want:  Ref{Project: "foo", Version: "1.6.2b0"},
		},
		{
			name:    "wrong project",
			tag:     "bar-v0.1.0",
			pname:   "foo",
			wantErr: true,
		},
		{
			name:    "missing v",
			tag:     "foo-0.1.0",
			pname:   "foo",
			wantErr: true,
		},
		{
			name:    "version not starting with digit",
			tag:     "foo-vx.1",
			pname:   "foo",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.tag, tt.pname)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRef_String(t *testing.T) {
	assert.Equal(t, "0.1.0", Ref{Version: "0.1.0"}.String())
	assert.Equal(t, "0.1.0+2.gcaffe00",
		Ref{Version: "0.1.0", DescID: "2-gcaffe00"}.String())
}

func TestCheckVersion(t *testing.T) {
	require.NoError(t, CheckVersion("1.6.2b0"))
	require.NoError(t, CheckVersion("0.1.0.post1"))

	assert.Error(t, CheckVersion(""))
	assert.Error(t, CheckVersion("v1.0.0"))
	assert.Error(t, CheckVersion("latest"))
}
