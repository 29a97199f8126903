// Package client provides test commands for the sheet gRPC service
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/coc-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/coc-api/internal/handlers/sheet/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	lang       string
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the sheet API",
	Long:  `Client commands exercise the sheet API by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&lang, "lang", "", "accept-language sent with each request (e.g. ja)")

	// Sheet commands
	ClientCmd.AddCommand(createSheetCmd)
	ClientCmd.AddCommand(getSheetCmd)

	// Version and export commands
	ClientCmd.AddCommand(historyCmd)
	ClientCmd.AddCommand(exportVTTCmd)

	// Dice commands
	ClientCmd.AddCommand(rollAbilitiesCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// call sends one request to the sheet service and returns the decoded response
func call(method string, body map[string]any) (map[string]any, error) {
	conn, err := createConnection()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if lang != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, v1alpha1.AcceptLanguageKey, lang)
	}

	req, err := structpb.NewStruct(body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp := &structpb.Struct{}
	if err := conn.Invoke(ctx, method, req, resp); err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return resp.AsMap(), nil
}

// printJSON writes v as indented JSON to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// toAnySlice converts string arguments for structpb
func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
