package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bibbank/scamguard/pkg/tlsutil"
)

func newCertsCmd() *cobra.Command {
	var (
		hosts  []string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Generate a development CA and server certificate for the gRPC listener",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := tlsutil.GenerateSelfSignedCert(hosts, outDir)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "CA certificate:     %s\n", files.CA)
			fmt.Fprintf(w, "Server certificate: %s\n", files.ServerCrt)
			fmt.Fprintf(w, "Server key:         %s\n", files.ServerKey)
			fmt.Fprintf(w, "\nexport GRPC_TLS_CERT_FILE=%s GRPC_TLS_KEY_FILE=%s\n", files.ServerCrt, files.ServerKey)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&hosts, "hosts", []string{"localhost", "127.0.0.1"}, "DNS names and IPs for the server certificate")
	cmd.Flags().StringVar(&outDir, "out", "certs", "output directory")
	return cmd
}
