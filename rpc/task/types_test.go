package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskResponseMarshalsCallVariant(t *testing.T) {
	resp := TaskResponse{Call: &CallResponse{
		Result:      HexBytes{0x01},
		StorageDiff: []DiffEntry{{Key: HexBytes("k")}},
	}}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var probe map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &probe))
	require.Contains(t, probe, "Call")
	require.NotContains(t, probe, "Error")
}

func TestTaskResponseMarshalsErrorVariant(t *testing.T) {
	msg := "trap: unreachable"
	resp := TaskResponse{Error: &msg}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var probe map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &probe))
	require.Contains(t, probe, "Error")
	require.NotContains(t, probe, "Call")
}

func TestTaskResponseRoundTripsThroughJSON(t *testing.T) {
	original := TaskResponse{Call: &CallResponse{
		Result: HexBytes{0xaa, 0xbb},
		RuntimeLogs: []LogInfo{
			{Message: "hello"},
		},
	}}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var round TaskResponse
	require.NoError(t, json.Unmarshal(data, &round))
	require.NotNil(t, round.Call)
	require.Nil(t, round.Error)
	require.Equal(t, original.Call.Result, round.Call.Result)
	require.Len(t, round.Call.RuntimeLogs, 1)
	require.Equal(t, "hello", round.Call.RuntimeLogs[0].Message)
}

func TestRuntimeAPIMarshalsNameHashAsLowercaseHex(t *testing.T) {
	api := RuntimeAPI{NameHash: [8]byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0}, Version: 3}
	data, err := json.Marshal(api)
	require.NoError(t, err)
	require.JSONEq(t, `{"name_hash":"0xdeadbeef00000000","version":3}`, string(data))
}
