package main

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/aretw0/canvasdoc/pkg/values"
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Encode, decode and list typed values",
}

var valueDecodeCmd = &cobra.Command{
	Use:     "decode <prefix:payload>",
	Short:   "Decode a typed value string and print its data as JSON",
	Example: `  canvasdoc value decode "pointXYZ:1,2,3"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := values.Default().Decode(args[0])
		if err != nil {
			return err
		}
		data, err := json.Marshal(v.Data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", v.Kind, data)
		return nil
	},
}

var valueEncodeCmd = &cobra.Command{
	Use:     "encode <kind> <json>",
	Short:   "Encode a JSON value as the named kind",
	Example: `  canvasdoc value encode color '{"A":255,"R":10,"G":20,"B":30}'`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := values.Default()
		kind, ok := codec.Named(args[0])
		if !ok {
			return fmt.Errorf("%w: kind %q", values.ErrUnknownType, args[0])
		}
		ptr := reflect.New(kind.Type())
		if err := json.Unmarshal([]byte(args[1]), ptr.Interface()); err != nil {
			return fmt.Errorf("parse %s: %w", kind.Name(), err)
		}
		s, err := codec.EncodeAs(kind.Name(), ptr.Elem().Interface())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

var valueKindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the registered kinds and their prefixes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range values.Default().Kinds() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", k.Name(), k.Prefix())
		}
	},
}

func init() {
	valueCmd.AddCommand(valueDecodeCmd, valueEncodeCmd, valueKindsCmd)
	rootCmd.AddCommand(valueCmd)
}
