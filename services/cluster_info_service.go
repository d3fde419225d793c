package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubealloc/dto"
	"github.com/kubealloc/lib/kubernetes"
	"github.com/kubealloc/lib/quantity"
)

// ClusterInfoService provides general information about Kubernetes cluster
type ClusterInfoService struct{}

// NewClusterInfoService creates a new cluster info service
func NewClusterInfoService() *ClusterInfoService {
	return &ClusterInfoService{}
}

// GetClusterInfo returns general information about the cluster
func (s *ClusterInfoService) GetClusterInfo(ctx context.Context) (dto.ClusterInfoResponse, error) {
	client, err := kubernetes.NewClient()
	if err != nil {
		return dto.ClusterInfoResponse{}, fmt.Errorf("failed to create Kubernetes client: %v", err)
	}

	// Get version information
	version, err := client.Clientset.Discovery().ServerVersion()
	if err != nil {
		return dto.ClusterInfoResponse{}, fmt.Errorf("failed to get server version: %v", err)
	}

	// Get nodes count
	nodes, err := client.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	nodeCount := 0
	if err == nil {
		nodeCount = len(nodes.Items)
	} else {
		log.Warn().Err(err).Msg("failed to get node count")
	}

	// Get namespaces count
	namespaces, err := client.Clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	namespaceCount := 0
	if err == nil {
		namespaceCount = len(namespaces.Items)
	} else {
		log.Warn().Err(err).Msg("failed to get namespace count")
	}

	// Get pods count across all namespaces
	pods, err := client.Clientset.CoreV1().Pods("").List(ctx, metav1.ListOptions{})
	podCount := 0
	if err == nil {
		podCount = len(pods.Items)
	} else {
		log.Warn().Err(err).Msg("failed to get pod count")
	}

	return dto.ClusterInfoResponse{
		Version: dto.ClusterVersion{
			GitVersion: version.GitVersion,
			Platform:   version.Platform,
			GoVersion:  version.GoVersion,
			BuildDate:  version.BuildDate,
		},
		Stats: dto.ClusterStats{
			NodeCount:      nodeCount,
			NamespaceCount: namespaceCount,
			PodCount:       podCount,
		},
		Usage: s.getClusterUsage(ctx, client),
	}, nil
}

// getClusterUsage sums live node usage from the metrics API. Returns nil
// when metrics-server is unavailable; the rest of the info still stands.
func (s *ClusterInfoService) getClusterUsage(ctx context.Context, client *kubernetes.Client) *dto.ClusterUsage {
	if client.MetricsClient == nil {
		return nil
	}

	metrics, err := client.MetricsClient.MetricsV1beta1().NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		log.Warn().Err(err).Msg("failed to get node metrics")
		return nil
	}

	var cpuTotal, memoryTotal quantity.Qty
	for i := range metrics.Items {
		usage := metrics.Items[i].Usage
		cpu, err := quantity.Parse(usage.Cpu().String())
		if err != nil {
			log.Warn().Err(err).Str("node", metrics.Items[i].Name).Msg("unparseable cpu usage")
			continue
		}
		memory, err := quantity.Parse(usage.Memory().String())
		if err != nil {
			log.Warn().Err(err).Str("node", metrics.Items[i].Name).Msg("unparseable memory usage")
			continue
		}
		cpuTotal = cpuTotal.Add(cpu)
		memoryTotal = memoryTotal.Add(memory)
	}

	return &dto.ClusterUsage{
		CPU:    cpuTotal.AdjustedScale(),
		Memory: memoryTotal.AdjustedScale(),
	}
}
