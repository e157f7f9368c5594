// Package client provides the lookup commands of the dex CLI. Each command
// calls a running server when --server is set and an in-process service
// otherwise.
package client

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/handlers/dex/v1alpha1"
)

// Backend is what the commands call. Both the in-process handler and a
// remote connection satisfy it.
type Backend = v1alpha1.DexServiceServer

// Local builds an in-process backend. Set by the main package.
var Local func(cmd *cobra.Command) (Backend, func(), error)

var (
	serverAddr string
	timeout    time.Duration
)

// Commands returns the lookup commands with their shared flags attached
func Commands() []*cobra.Command {
	cmds := []*cobra.Command{
		speciesCmd,
		searchCmd,
		evolutionCmd,
		spawnCmd,
		resolveCmd,
	}
	for _, c := range cmds {
		c.Flags().StringVar(&serverAddr, "server", "", "gRPC server address (default in-process)")
		c.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	}
	return cmds
}

// remote adapts the generated-style client to Backend
type remote struct {
	client v1alpha1.DexServiceClient
}

func (r *remote) GetSpecies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return r.client.GetSpecies(ctx, req)
}

func (r *remote) SearchSpecies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return r.client.SearchSpecies(ctx, req)
}

func (r *remote) GetEvolution(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return r.client.GetEvolution(ctx, req)
}

func (r *remote) RandomSpawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return r.client.RandomSpawn(ctx, req)
}

func (r *remote) ResolveMove(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return r.client.ResolveMove(ctx, req)
}

// NewRemote wraps a connection as a Backend
func NewRemote(cc grpc.ClientConnInterface) Backend {
	return &remote{client: v1alpha1.NewDexServiceClient(cc)}
}

func backend(cmd *cobra.Command) (Backend, func(), error) {
	if serverAddr == "" {
		if Local == nil {
			return nil, nil, fmt.Errorf("no server address and no local backend")
		}
		return Local(cmd)
	}

	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return NewRemote(conn), cleanup, nil
}

type call func(ctx context.Context, b Backend, req *structpb.Struct) (*structpb.Struct, error)

// run sends req through fn and prints the response as indented JSON
func run(cmd *cobra.Command, body map[string]interface{}, fn call) error {
	req, err := structpb.NewStruct(body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	b, cleanup, err := backend(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := fn(ctx, b, req)
	if err != nil {
		return describe(err)
	}
	return printJSON(cmd.OutOrStdout(), resp)
}

// describe turns a status error into "CODE: message (key=value, ...)"
func describe(err error) error {
	e := errors.FromGRPCError(err)
	out := fmt.Sprintf("%s: %s", errors.GetCode(e), errors.GetMessage(e))

	meta := errors.GetMeta(e)
	if len(meta) == 0 {
		return fmt.Errorf("%s", out)
	}
	pairs := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return fmt.Errorf("%s (%s)", out, strings.Join(pairs, ", "))
}

func printJSON(w io.Writer, msg *structpb.Struct) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
