// Package errors provides structured, coded errors for dex-api.
//
// Every error carries a Code that maps onto a gRPC status, a message that is
// safe to show to callers, an optional cause, and optional metadata.
//
//	err := errors.NotFoundf("species %d not found", id).
//	    WithMeta("species_id", id)
//
// Wrapping keeps the original code:
//
//	if err != nil {
//	    return errors.Wrap(err, "failed to build species view")
//	}
//
// CodeDataIntegrity is reserved for source data whose references do not
// resolve. The store refuses to build when it sees one, so the process
// never serves a partially linked graph.
//
// Config structs validate themselves with a ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Store == nil {
//	    vb.RequiredField("Store")
//	}
//	return vb.Build()
//
// Handlers return errors.ToGRPCError(err) so the code and metadata survive
// the wire. FromGRPCError restores them on the client side.
package errors
