package client

import (
	"context"
	"errors"
	"fmt"

	"mini-rss/internal/assignment"
	"mini-rss/internal/common"
	"mini-rss/internal/rpc"
)

// UnregisterApp pide a cada servidor de la tabla que libere los ids de la aplicacion.
// Sigue con el resto aunque alguno falle y devuelve todos los errores juntos.
func UnregisterApp(ctx context.Context, c *rpc.Client, table assignment.Table, appID string) error {
	servers := make(common.ServerSet)
	for _, set := range table {
		for server := range set {
			servers.Add(server)
		}
	}

	var errs []error
	req := common.UnregisterAppRequest{AppID: appID}
	for _, server := range servers.Sorted() {
		if err := c.Call(ctx, server.Address(), rpc.NewRequest(common.MethodUnregisterApp, req), nil); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", server, err))
		}
	}
	return errors.Join(errs...)
}
