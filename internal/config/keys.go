package config

import "runtime"

// Claves de configuracion y sus valores por defecto.
const (
	RssClientType             = "rss.client.type"
	RssClientTypeDefaultValue = "HTTP"

	RssClientRetryMax                     = "rss.client.retry.max"
	RssClientRetryMaxDefaultValue         = 50
	RssClientRetryIntervalMax             = "rss.client.retry.interval.max"
	RssClientRetryIntervalMaxDefaultValue = int64(10000) // ms

	RssClientHeartbeatThreadNum             = "rss.client.heartBeat.threadNum"
	RssClientHeartbeatThreadNumDefaultValue = 4

	RssDataReplica                        = "rss.data.replica"
	RssDataReplicaDefaultValue            = 1
	RssDataReplicaWrite                   = "rss.data.replica.write"
	RssDataReplicaWriteDefaultValue       = 1
	RssDataReplicaRead                    = "rss.data.replica.read"
	RssDataReplicaReadDefaultValue        = 1
	RssDataReplicaSkipEnabled             = "rss.data.replica.skip.enabled"
	RssDataReplicaSkipEnabledDefaultValue = true

	RssDataTransferPoolSize           = "rss.client.data.transfer.pool.size"
	RssDataCommitPoolSize             = "rss.client.data.commit.pool.size"
	RssDataCommitPoolSizeDefaultValue = -1

	RssRuntimeIOSortMB        = "rss.runtime.io.sort.mb"
	RssDefaultRuntimeIOSortMB = int64(100)

	RssClientAssignmentShuffleServerNumber             = "rss.client.assignment.shuffle.nodes.max"
	RssClientAssignmentShuffleServerNumberDefaultValue = -1

	RssEstimateServerAssignmentEnabled                  = "rss.estimate.server.assignment.enabled"
	RssEstimateServerAssignmentEnabledDefaultValue      = false
	RssEstimateTaskConcurrencyDynamicFactor             = "rss.estimate.task.concurrency.dynamic.factor"
	RssEstimateTaskConcurrencyDynamicFactorDefaultValue = 1.0
	RssEstimateTaskConcurrencyPerServer                 = "rss.estimate.task.concurrency.per.server"
	RssEstimateTaskConcurrencyPerServerDefaultValue     = 80

	MRSlowStart               = "mapreduce.job.reduce.slowstart.completedmaps"
	MRSlowStartDefaultValue   = 0.05
	MRMapLimit                = "mapreduce.job.running.map.limit"
	MRMapLimitDefaultValue    = 0
	MRReduceLimit             = "mapreduce.job.running.reduce.limit"
	MRReduceLimitDefaultValue = 0

	RpcServerType             = "rss.rpc.server.type"
	RpcServerTypeDefaultValue = "HTTP"
	RpcServerPort             = "rss.rpc.server.port"
	RpcServerPortDefaultValue = 19999

	CoordinatorAddress             = "rss.coordinator.address"
	CoordinatorAddressDefaultValue = "localhost:19990"

	ServerHeartbeatInterval             = "rss.server.heartbeat.interval"
	ServerHeartbeatIntervalDefaultValue = int64(2000) // ms
	ServerHeartbeatTimeout              = "rss.coordinator.server.heartbeat.timeout"
	ServerHeartbeatTimeoutDefaultValue  = int64(10000) // ms
)

// El pool de transferencia por defecto usa todos los procesadores.
var RssDataTransferPoolSizeDefaultValue = runtime.NumCPU()
