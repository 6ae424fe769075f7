// Package client es el lado Tez: pide asignaciones, escribe block ids y decide que leer.
package client

import (
	"time"

	"mini-rss/internal/config"
)

// Options agrupa la configuracion del cliente de escritura y lectura.
type Options struct {
	ClientType         string
	RetryMax           int
	RetryIntervalMax   time.Duration
	HeartbeatThreadNum int
	Replica            int
	ReplicaWrite       int
	ReplicaRead        int
	ReplicaSkipEnabled bool
	DataTransferPool   int
	DataCommitPool     int
	CoordinatorAddress string
}

func NewOptions(conf *config.Conf) Options {
	return Options{
		ClientType:         conf.GetString(config.RssClientType, config.RssClientTypeDefaultValue),
		RetryMax:           conf.GetInt(config.RssClientRetryMax, config.RssClientRetryMaxDefaultValue),
		RetryIntervalMax:   time.Duration(conf.GetInt64(config.RssClientRetryIntervalMax, config.RssClientRetryIntervalMaxDefaultValue)) * time.Millisecond,
		HeartbeatThreadNum: conf.GetInt(config.RssClientHeartbeatThreadNum, config.RssClientHeartbeatThreadNumDefaultValue),
		Replica:            conf.GetInt(config.RssDataReplica, config.RssDataReplicaDefaultValue),
		ReplicaWrite:       conf.GetInt(config.RssDataReplicaWrite, config.RssDataReplicaWriteDefaultValue),
		ReplicaRead:        conf.GetInt(config.RssDataReplicaRead, config.RssDataReplicaReadDefaultValue),
		ReplicaSkipEnabled: conf.GetBool(config.RssDataReplicaSkipEnabled, config.RssDataReplicaSkipEnabledDefaultValue),
		DataTransferPool:   conf.GetInt(config.RssDataTransferPoolSize, config.RssDataTransferPoolSizeDefaultValue),
		DataCommitPool:     conf.GetInt(config.RssDataCommitPoolSize, config.RssDataCommitPoolSizeDefaultValue),
		CoordinatorAddress: conf.GetString(config.CoordinatorAddress, config.CoordinatorAddressDefaultValue),
	}
}
