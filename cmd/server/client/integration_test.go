//go:build integration

package client

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
)

func invoke(t *testing.T, conn *grpc.ClientConn, method string, body map[string]any) map[string]any {
	t.Helper()

	req, err := structpb.NewStruct(body)
	require.NoError(t, err)

	resp := &structpb.Struct{}
	require.NoError(t, conn.Invoke(context.Background(), method, req, resp))
	return resp.AsMap()
}

func TestCreateAndExportIntegration(t *testing.T) {
	// Skip if not running integration tests
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	// Connect to our gRPC server
	grpcServerAddress := os.Getenv("GRPC_SERVER_ADDRESS")
	if grpcServerAddress == "" {
		grpcServerAddress = "localhost:50051"
	}
	conn, err := grpc.NewClient(grpcServerAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer func() {
		if err := conn.Close(); err != nil {
			t.Logf("Failed to close connection: %v", err)
		}
	}()

	owner := "integration-" + uuid.NewString()

	created := invoke(t, conn, v1alpha1.MethodCreateSheet, map[string]any{
		"owner_id": owner,
		"name":     "Harvey Walters",
		"edition":  "6th",
		"abilities": map[string]any{
			"str": 65, "con": 70, "pow": 55, "dex": 65,
			"app": 50, "siz": 60, "int": 75, "edu": 80,
		},
		"skills": []any{
			map[string]any{"name": "Library Use", "base": 20, "occupation": 25},
		},
	})
	sheet, ok := created["sheet"].(map[string]any)
	require.True(t, ok)
	sheetID, ok := sheet["id"].(string)
	require.True(t, ok)

	exported := invoke(t, conn, v1alpha1.MethodExportVTT, map[string]any{"sheet_id": sheetID})
	data, ok := exported["data"].(map[string]any)
	require.True(t, ok)

	commands, ok := data["commands"].(string)
	require.True(t, ok)
	lines := strings.Split(commands, "\n")
	assert.Contains(t, lines, "CCB<=375 【アイデア】")
	assert.Contains(t, lines, "CCB<=45 【Library Use】")

	history := invoke(t, conn, v1alpha1.MethodHistory, map[string]any{"sheet_id": sheetID})
	assert.Len(t, history["versions"], 1)
}
