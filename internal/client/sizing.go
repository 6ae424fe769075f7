package client

import (
	"fmt"
	"log"
	"math"

	"mini-rss/internal/common"
	"mini-rss/internal/config"
)

// EstimateTaskConcurrency estima cuantas tareas escriben a la vez, teniendo en cuenta el slow start.
func EstimateTaskConcurrency(conf *config.Conf, mapNum, reduceNum int) int {
	dynamicFactor := conf.GetFloat(config.RssEstimateTaskConcurrencyDynamicFactor,
		config.RssEstimateTaskConcurrencyDynamicFactorDefaultValue)
	slowStart := conf.GetFloat(config.MRSlowStart, config.MRSlowStartDefaultValue)
	mapLimit := conf.GetInt(config.MRMapLimit, config.MRMapLimitDefaultValue)
	reduceLimit := conf.GetInt(config.MRReduceLimit, config.MRReduceLimitDefaultValue)

	estimateMapNum := mapNum
	if mapLimit > 0 {
		estimateMapNum = min(mapNum, mapLimit)
	}
	estimateReduceNum := reduceNum
	if reduceLimit > 0 {
		estimateReduceNum = min(reduceNum, reduceLimit)
	}

	if slowStart == 1 {
		return int(float64(max(estimateMapNum, estimateReduceNum)) * dynamicFactor)
	}
	return int(((1-slowStart)*float64(estimateMapNum) + float64(estimateReduceNum)) * dynamicFactor)
}

// RequiredShuffleServerNumber devuelve cuantos servidores pedir al coordinador.
// Un valor configurado > 0 tiene prioridad sobre la estimacion.
func RequiredShuffleServerNumber(conf *config.Conf, mapNum, reduceNum int) int {
	required := conf.GetInt(config.RssClientAssignmentShuffleServerNumber,
		config.RssClientAssignmentShuffleServerNumberDefaultValue)
	enabled := conf.GetBool(config.RssEstimateServerAssignmentEnabled,
		config.RssEstimateServerAssignmentEnabledDefaultValue)
	if !enabled || required > 0 {
		return required
	}

	concurrency := EstimateTaskConcurrency(conf, mapNum, reduceNum)
	perServer := conf.GetInt(config.RssEstimateTaskConcurrencyPerServer,
		config.RssEstimateTaskConcurrencyPerServerDefaultValue)
	if perServer <= 0 {
		// Sin limite por servidor se piden todos; el coordinador recorta a los vivos.
		log.Printf("[Client] %s=%d no es positivo, se piden todos los servidores",
			config.RssEstimateTaskConcurrencyPerServer, perServer)
		return math.MaxInt32
	}
	return int(math.Ceil(float64(concurrency) / float64(perServer)))
}

// InitialMemoryRequirement devuelve en bytes la memoria de buffer a pedir.
func InitialMemoryRequirement(conf *config.Conf, maxAvailableTaskMemory int64) (int64, error) {
	initialMemRequestMB := conf.GetInt64(config.RssRuntimeIOSortMB, config.RssDefaultRuntimeIOSortMB)
	reqBytes := initialMemRequestMB << 20
	if initialMemRequestMB <= 0 || reqBytes >= maxAvailableTaskMemory {
		return 0, fmt.Errorf("%s=%d debe ser mayor a 0 y menor que la memoria disponible (%d MB): %w",
			config.RssRuntimeIOSortMB, initialMemRequestMB, maxAvailableTaskMemory>>20, common.ErrInvalidArgument)
	}
	log.Printf("[Client] Memoria inicial pedida: %d MB (disponible %d MB)", initialMemRequestMB, maxAvailableTaskMemory>>20)
	return reqBytes, nil
}
