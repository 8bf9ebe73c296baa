// Package pluginhost discovers and launches third-party providers as
// separate processes over hashicorp/go-plugin (spec.md §4.4: "discovery
// of third-party providers occurs via a host-controlled plugin
// mechanism, opaque to the engine"). The engine package never imports
// this one; a host wires a launched plugin's provider.Provider into the
// registry like any built-in.
//
// Plugin providers serve plain field lookups only: namespace, subfield,
// attribute path, and the file's path. They cannot consume the default
// sub-template as a payload (no AST or eval-callback crosses the
// process boundary), so fields like format/strftime/var/strip stay
// in-process builtins by construction.
package pluginhost

import (
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// Handshake is the shared handshake both host and plugin binaries must
// agree on before a connection is trusted.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "MTL_PROVIDER_PLUGIN",
	MagicCookieValue: "metadata-template-language",
}

// PluginMap is the name under which a provider plugin registers itself,
// passed to both plugin.Client and plugin.Serve.
var PluginMap = map[string]plugin.Plugin{
	"provider": &ProviderPlugin{},
}

// ResolveArgs is the RPC argument bundle for one field lookup.
type ResolveArgs struct {
	Namespace string
	Field     string
	Attrs     []string
	FilePath  string
}

// ResolveReply is the RPC result of one field lookup.
type ResolveReply struct {
	Values []string
	OK     bool
}

// SimpleProvider is the interface a third-party plugin binary
// implements and exposes over RPC.
type SimpleProvider interface {
	Namespaces() ([]string, error)
	Resolve(args ResolveArgs) (ResolveReply, error)
}

// ProviderPlugin adapts SimpleProvider to go-plugin's net/rpc transport.
type ProviderPlugin struct {
	plugin.NetRPCUnsupportedBroker
	Impl SimpleProvider
}

func (p *ProviderPlugin) Server(*plugin.MuxBroker) (interface{}, error) {
	return &rpcServer{impl: p.Impl}, nil
}

func (p *ProviderPlugin) Client(_ *plugin.MuxBroker, c *rpc.Client) (interface{}, error) {
	return &rpcClient{client: c}, nil
}

type rpcServer struct {
	impl SimpleProvider
}

func (s *rpcServer) Namespaces(_ struct{}, reply *[]string) error {
	ns, err := s.impl.Namespaces()
	if err != nil {
		return err
	}
	*reply = ns
	return nil
}

func (s *rpcServer) Resolve(args ResolveArgs, reply *ResolveReply) error {
	r, err := s.impl.Resolve(args)
	if err != nil {
		return err
	}
	*reply = r
	return nil
}

type rpcClient struct {
	client *rpc.Client
}

func (c *rpcClient) Namespaces() ([]string, error) {
	var reply []string
	err := c.client.Call("Plugin.Namespaces", struct{}{}, &reply)
	return reply, err
}

func (c *rpcClient) Resolve(args ResolveArgs) (ResolveReply, error) {
	var reply ResolveReply
	err := c.client.Call("Plugin.Resolve", args, &reply)
	return reply, err
}
