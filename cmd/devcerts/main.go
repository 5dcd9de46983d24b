// Command devcerts writes a throwaway CA and a server certificate for running
// calculatord with gRPC TLS locally.
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/andre1397/calculadora-TOTVS/pkg/observability"
	"github.com/andre1397/calculadora-TOTVS/pkg/tlsutil"
)

func main() {
	outDir := flag.String("out", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated DNS names and IPs")
	flag.Parse()

	logger := observability.InitLogger(observability.LogConfig{Level: "info", Format: "text", Service: "devcerts"})

	certs, err := tlsutil.GenerateDevCertificates(strings.Split(*hosts, ","), *outDir)
	if err != nil {
		logger.Error("failed to generate certificates", "error", err)
		os.Exit(1)
	}

	logger.Info("certificates written",
		"ca", certs.CAFile,
		"cert", certs.CertFile,
		"key", certs.KeyFile,
	)
}
