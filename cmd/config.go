// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"helpdesk/cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or change CLI settings",
	Annotations: map[string]string{annotationNoSession: "true"},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := flatten("", loader.Settings())
		keys := make([]string, 0, len(rows))
		for k := range rows {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		data := pterm.TableData{{"Key", "Value"}}
		for _, k := range keys {
			data = append(data, []string{k, rows[k]})
		}
		pterm.Println(pterm.Gray("File: " + loader.Path()))
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting in config.yaml",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var out []string
		for k, desc := range config.Keys() {
			out = append(out, k+"\t"+desc)
		}
		sort.Strings(out)
		return out, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loader.Set(args[0], args[1]); err != nil {
			return err
		}
		pterm.Success.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

// flatten renders nested settings as dotted keys. Secrets are masked.
func flatten(prefix string, m map[string]any) map[string]string {
	out := map[string]string{}
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			for fk, fv := range flatten(key, val) {
				out[fk] = fv
			}
		case []string:
			out[key] = strings.Join(val, ",")
		case []any:
			parts := make([]string, 0, len(val))
			for _, p := range val {
				parts = append(parts, fmt.Sprint(p))
			}
			out[key] = strings.Join(parts, ",")
		default:
			out[key] = fmt.Sprint(val)
		}
		if isSecretKey(key) && out[key] != "" {
			out[key] = "***"
		}
	}
	return out
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "password")
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
