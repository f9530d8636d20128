// Package util provides the container helpers shared by the integration
// tests: StartMosquitto and StartInflux boot disposable brokers through
// testcontainers, WaitForMetric polls a Prometheus exposition endpoint for
// an expected line.
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	MosquittoReadyTimeout = 5 * time.Second
	MetricTimeout         = 5 * time.Second
	InfluxStartTimeout    = 60 * time.Second

	pollInterval = 50 * time.Millisecond
)

// WaitForMetric polls metricsURL until substr appears in the exposition
// output or the context is done.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, metricsURL, nil)
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			body, rerr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if rerr != nil {
				return fmt.Errorf("read metrics body: %w", rerr)
			}
			if strings.Contains(string(body), substr) {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("metric %q not found: %w", substr, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

// mosquittoConf opens the broker to anonymous clients; everything else stays
// at the image defaults.
const mosquittoConf = `listener 1883
allow_anonymous true
persistence false
log_dest stdout
`

// StartMosquitto boots an eclipse-mosquitto container and returns its broker
// URL with a cleanup function. It blocks until the broker accepts MQTT
// connects, not just TCP.
func StartMosquitto(ctx context.Context) (string, func(), error) {
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:2.0",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
		Files: []tc.ContainerFile{
			{
				Reader:            strings.NewReader(mosquittoConf),
				ContainerFilePath: "/mosquitto/config/mosquitto.conf",
				FileMode:          0644,
			},
		},
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		_ = cont.Terminate(context.Background())
	}

	host, err := cont.Host(ctx)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	port, err := cont.MappedPort(ctx, "1883")
	if err != nil {
		cleanup()
		return "", nil, err
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())

	waitCtx, cancel := context.WithTimeout(ctx, MosquittoReadyTimeout)
	defer cancel()
	if err := waitForMQTTReady(waitCtx, broker); err != nil {
		cleanup()
		return "", nil, err
	}

	return broker, cleanup, nil
}

// waitForMQTTReady retries a full MQTT connect until the broker answers.
func waitForMQTTReady(ctx context.Context, broker string) error {
	opts := paho.NewClientOptions().AddBroker(broker).SetClientID("readiness-probe")
	for {
		cli := paho.NewClient(opts)
		token := cli.Connect()
		token.Wait()
		if token.Error() == nil {
			cli.Disconnect(100)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// InfluxParams holds the connection parameters of a disposable InfluxDB
// instance started by StartInflux.
type InfluxParams struct {
	URL    string
	Org    string
	Bucket string
	Token  string
}

// StartInflux launches a temporary InfluxDB 2.x server provisioned with an
// organisation, a bucket and an admin token, and returns its parameters along
// with a cleanup function.
func StartInflux(ctx context.Context) (InfluxParams, func(), error) {
	params := InfluxParams{
		Org:    "vrp-test",
		Bucket: "search",
		Token:  "vrp-test-token",
	}
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		Env: map[string]string{
			"DOCKER_INFLUXDB_INIT_MODE":        "setup",
			"DOCKER_INFLUXDB_INIT_USERNAME":    "solver",
			"DOCKER_INFLUXDB_INIT_PASSWORD":    "solver-secret",
			"DOCKER_INFLUXDB_INIT_ORG":         params.Org,
			"DOCKER_INFLUXDB_INIT_BUCKET":      params.Bucket,
			"DOCKER_INFLUXDB_INIT_ADMIN_TOKEN": params.Token,
		},
		WaitingFor: wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(InfluxStartTimeout),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		return InfluxParams{}, nil, err
	}
	cleanup := func() {
		_ = cont.Terminate(context.Background())
	}
	host, err := cont.Host(ctx)
	if err != nil {
		cleanup()
		return InfluxParams{}, nil, err
	}
	port, err := cont.MappedPort(ctx, "8086")
	if err != nil {
		cleanup()
		return InfluxParams{}, nil, err
	}
	params.URL = fmt.Sprintf("http://%s:%s", host, port.Port())
	return params, cleanup, nil
}
