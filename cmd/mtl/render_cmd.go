package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mtlang/mtl"
	"github.com/mtlang/mtl/builtin"
	"github.com/mtlang/mtl/pluginhost"
	"github.com/mtlang/mtl/provider"
	"github.com/mtlang/mtl/registrycfg"
)

func newRenderCmd() *cobra.Command {
	var filePath, pluginDir string

	cmd := &cobra.Command{
		Use:   "render <template-string>",
		Short: "Render an MTL template against a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template := args[0]

			file, err := newOSFile(filePath)
			if err != nil {
				return fmt.Errorf("mtl: %w", err)
			}

			reg := mtl.NewRegistry()
			if pluginDir != "" {
				clients, err := loadPlugins(reg, pluginDir)
				for _, c := range clients {
					defer c.Kill()
				}
				if err != nil {
					return err
				}
			}

			if err := reg.Register(&builtin.NoNamespace{}); err != nil {
				return err
			}
			if err := reg.Register(builtin.NewAudioProvider()); err != nil {
				return err
			}
			if err := reg.Register(builtin.NewPDFProvider()); err != nil {
				return err
			}
			if err := reg.Register(builtin.NewDocxProvider()); err != nil {
				return err
			}

			values, err := mtl.RenderString(context.Background(), template, file, reg)
			if err != nil {
				return err
			}

			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "path to the file rendered against")
	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "", "directory holding a providers.yaml manifest and its plugin binaries")
	cmd.MarkFlagRequired("file")
	return cmd
}

// loadPlugins reads dir/providers.yaml and launches each bound plugin
// binary, registering its provider.Provider in reg; the caller runs it
// before registering the builtins, so a plugin is tried ahead of them
// (and can override a builtin namespace).
// Relative binary paths in the manifest are resolved against dir.
// Launched clients are returned so the caller can defer their Kill.
func loadPlugins(reg *provider.Registry, dir string) ([]*pluginhost.Client, error) {
	manifest, err := registrycfg.Load(filepath.Join(dir, "providers.yaml"))
	if err != nil {
		return nil, fmt.Errorf("mtl: %w", err)
	}

	var clients []*pluginhost.Client
	for _, binding := range manifest.Plugins {
		path := binding.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		client, err := pluginhost.Launch(path, binding.Args...)
		if err != nil {
			return clients, fmt.Errorf("mtl: launch plugin %q: %w", binding.Namespace, err)
		}
		clients = append(clients, client)
		if err := reg.Register(client.Provider); err != nil {
			return clients, fmt.Errorf("mtl: register plugin %q: %w", binding.Namespace, err)
		}
	}
	return clients, nil
}
