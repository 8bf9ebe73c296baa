package pluginhost

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-plugin"

	"github.com/mtlang/mtl/mtlerr"
	mtlprovider "github.com/mtlang/mtl/provider"
)

// Client wraps a launched plugin process together with the
// mtlprovider.Provider adapter the registry registers.
type Client struct {
	rpcClient *plugin.Client
	Provider  mtlprovider.Provider
}

// Kill terminates the plugin process. Callers should defer this after
// a successful Launch.
func (c *Client) Kill() { c.rpcClient.Kill() }

// Launch starts the plugin binary at path (with args), completes the
// go-plugin handshake, and returns a ready-to-register provider.
func Launch(path string, args ...string) (*Client, error) {
	rc := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap,
		Cmd:             exec.Command(path, args...),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
	})

	rpcClient, err := rc.Client()
	if err != nil {
		rc.Kill()
		return nil, fmt.Errorf("pluginhost: connect to %s: %w", path, err)
	}

	raw, err := rpcClient.Dispense("provider")
	if err != nil {
		rc.Kill()
		return nil, fmt.Errorf("pluginhost: dispense provider from %s: %w", path, err)
	}

	sp, ok := raw.(SimpleProvider)
	if !ok {
		rc.Kill()
		return nil, fmt.Errorf("pluginhost: %s did not implement SimpleProvider", path)
	}

	return &Client{rpcClient: rc, Provider: &adapter{namespace: path, sp: sp}}, nil
}

// adapter implements mtlprovider.Provider over a SimpleProvider. The
// default sub-template can't cross the plugin RPC boundary, so the
// adapter never consumes it (consumedDefault is always false) and a
// statement's default clause stays a fallback for the evaluator.
type adapter struct {
	namespace string
	sp        SimpleProvider
}

func (a *adapter) Namespaces() []string {
	ns, err := a.sp.Namespaces()
	if err != nil {
		return nil
	}
	return ns
}

func (a *adapter) Resolve(_ context.Context, req mtlprovider.Request) ([]string, bool, bool, error) {
	reply, err := a.sp.Resolve(ResolveArgs{
		Namespace: req.Namespace,
		Field:     req.Field,
		Attrs:     req.Attrs,
		FilePath:  req.File.Path(),
	})
	if err != nil {
		return nil, false, false, mtlerr.ProviderError("", req.Namespace, err)
	}
	return reply.Values, false, reply.OK, nil
}
