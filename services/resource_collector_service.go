package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubealloc/lib/aggregate"
	"github.com/kubealloc/lib/kubernetes"
	"github.com/kubealloc/lib/quantity"
)

// ResourceCollectorService turns the cluster's node and pod specs into a
// flat list of quantity observations for the aggregator.
type ResourceCollectorService struct{}

// NewResourceCollectorService creates a new resource collector service
func NewResourceCollectorService() *ResourceCollectorService {
	return &ResourceCollectorService{}
}

// CollectObservations lists nodes and pods and returns one observation
// per allocatable, request and limit entry. A non-empty namespace
// narrows the pod list. A malformed quantity anywhere aborts the whole
// collection: dropping it silently would make every downstream sum
// meaningless.
func (s *ResourceCollectorService) CollectObservations(ctx context.Context, namespace string) ([]aggregate.Observation, error) {
	kubeClient, err := kubernetes.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %v", err)
	}

	if namespace != "" {
		exists, err := kubeClient.NamespaceExists(ctx, namespace)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("namespace %s not found", namespace)
		}
	}

	nodes, err := kubeClient.Clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %v", err)
	}

	var observations []aggregate.Observation
	for i := range nodes.Items {
		nodeObs, err := NodeObservations(&nodes.Items[i])
		if err != nil {
			return nil, err
		}
		observations = append(observations, nodeObs...)
	}

	pods, err := kubeClient.Clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %v", err)
	}

	for i := range pods.Items {
		podObs, err := PodObservations(&pods.Items[i])
		if err != nil {
			return nil, err
		}
		observations = append(observations, podObs...)
	}

	log.Debug().
		Int("nodes", len(nodes.Items)).
		Int("pods", len(pods.Items)).
		Int("observations", len(observations)).
		Msg("collected cluster observations")

	return observations, nil
}

// NodeObservations converts a node's allocatable resource list into
// observations tagged with the node name.
func NodeObservations(node *corev1.Node) ([]aggregate.Observation, error) {
	location := aggregate.Location{NodeName: node.Name}

	observations := make([]aggregate.Observation, 0, len(node.Status.Allocatable))
	for name, amount := range node.Status.Allocatable {
		qty, err := quantity.Parse(amount.String())
		if err != nil {
			return nil, fmt.Errorf("node %s allocatable %s: %w", node.Name, name, err)
		}
		observations = append(observations, aggregate.Observation{
			Kind:     string(name),
			Quantity: qty,
			Usage:    aggregate.UsageAllocatable,
			Location: location,
		})
	}
	return observations, nil
}

// PodObservations converts a pod's container requests and limits into
// observations. Pods that already ran to completion hold no capacity
// and are skipped.
func PodObservations(pod *corev1.Pod) ([]aggregate.Observation, error) {
	if pod.Status.Phase == corev1.PodSucceeded || pod.Status.Phase == corev1.PodFailed {
		return nil, nil
	}

	// A nominated node wins over the scheduled one while preemption is
	// in flight
	nodeName := pod.Status.NominatedNodeName
	if nodeName == "" {
		nodeName = pod.Spec.NodeName
	}

	var observations []aggregate.Observation
	for _, container := range pod.Spec.Containers {
		location := aggregate.Location{
			NodeName:      nodeName,
			Namespace:     pod.Namespace,
			PodName:       pod.Name,
			ContainerName: container.Name,
		}
		for name, amount := range container.Resources.Requests {
			qty, err := quantity.Parse(amount.String())
			if err != nil {
				return nil, fmt.Errorf("pod %s/%s container %s request %s: %w", pod.Namespace, pod.Name, container.Name, name, err)
			}
			observations = append(observations, aggregate.Observation{
				Kind:     string(name),
				Quantity: qty,
				Usage:    aggregate.UsageRequested,
				Location: location,
			})
		}
		for name, amount := range container.Resources.Limits {
			qty, err := quantity.Parse(amount.String())
			if err != nil {
				return nil, fmt.Errorf("pod %s/%s container %s limit %s: %w", pod.Namespace, pod.Name, container.Name, name, err)
			}
			observations = append(observations, aggregate.Observation{
				Kind:     string(name),
				Quantity: qty,
				Usage:    aggregate.UsageLimit,
				Location: location,
			})
		}
	}
	return observations, nil
}
