package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"factcheck/config"

	"github.com/spf13/cobra"
)

var checkUserID uint

var checkCmd = &cobra.Command{
	Use:   "check <声明>",
	Short: "核查一条声明并输出保存后的记录",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()

		var owner *uint
		if checkUserID != 0 {
			owner = &checkUserID
		}

		rec, err := a.service.Submit(cmd.Context(), strings.Join(args, " "), owner)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	checkCmd.Flags().UintVar(&checkUserID, "user", 0, "记录归属的用户 ID（可选）")
}
