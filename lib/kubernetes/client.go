package kubernetes

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	metricsv1beta1 "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/kubealloc/config"
)

// ProxyOptions contains options for connecting to kubectl proxy
type ProxyOptions struct {
	// Host is the kubectl proxy URL (default: http://localhost:8001)
	Host string
}

// Client represents a kubernetes client
type Client struct {
	Clientset     *kubernetes.Clientset
	MetricsClient *metricsv1beta1.Clientset
}

// NewClient creates a new Kubernetes client using the proxy address from env or default
func NewClient() (*Client, error) {
	return NewClientWithOptions(ProxyOptions{
		Host: config.GetEnv("KUBEALLOC_K8S_PROXY_URL", "http://localhost:8001"),
	})
}

// NewClientWithOptions creates a new Kubernetes client with the specified proxy options
func NewClientWithOptions(options ProxyOptions) (*Client, error) {
	host := options.Host
	if host == "" {
		host = "http://localhost:8001"
	}

	// Create a simple REST config pointing to the kubectl proxy
	restConfig := &rest.Config{
		Host: host,
		// No authentication needed when using kubectl proxy
		TLSClientConfig: rest.TLSClientConfig{
			Insecure: true,
		},
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %v", err)
	}

	// Metrics are optional; the capacity report works without them
	metricsClient, err := metricsv1beta1.NewForConfig(restConfig)
	if err != nil {
		log.Warn().Err(err).Msg("unable to create metrics client")
		metricsClient = nil
	}

	return &Client{
		Clientset:     clientset,
		MetricsClient: metricsClient,
	}, nil
}
