package orchestration

import (
	"log"

	"go.temporal.io/sdk/client"
)

// TaskQueue is the queue shared by the API and the dataset worker.
const TaskQueue = "postcraft-datasets"

var TemporalClient client.Client

func InitTemporalClient(address string) (client.Client, error) {
	// The client is a heavyweight object that should be created once per process.
	c, err := client.Dial(client.Options{
		HostPort: address,
	})
	if err != nil {
		// Return error to allow graceful degradation when Temporal is down
		log.Printf("Warning: Unable to create Temporal client: %v", err)
		return nil, err
	}

	TemporalClient = c
	return c, nil
}

func CloseTemporalClient() {
	if TemporalClient != nil {
		TemporalClient.Close()
	}
}
