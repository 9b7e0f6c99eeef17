package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/spf13/cobra"
)

// NewKeysCmd prints fresh cookie keys in the base64 form the config expects.
func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Generate session cookie keys",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("COOKIE_HASH_KEY=" + base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)))
			fmt.Println("COOKIE_BLOCK_KEY=" + base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)))
		},
	}
}
