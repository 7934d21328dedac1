package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	glog "github.com/goliatone/go-logger/glog"

	leavelookup "github.com/goliatone/go-leave-lookup"
	"github.com/goliatone/go-leave-lookup/core"
	dynamostore "github.com/goliatone/go-leave-lookup/store/dynamo"
)

func main() {
	ctx := context.Background()
	_, logger := glog.Resolve("leave-lookup", nil, nil)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	tableName := envOr("LEAVE_BALANCE_TABLE", "leaveBalance")
	keyAttribute := envOr("LEAVE_BALANCE_KEY", "empID")

	store, err := dynamostore.NewStore(dynamodb.NewFromConfig(awsCfg), dynamostore.TableOptions{
		Name:         tableName,
		KeyAttribute: keyAttribute,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("build dynamodb store: %v", err)
	}

	cfg := core.Config{
		Table: core.TableConfig{
			Name:         tableName,
			KeyAttribute: keyAttribute,
		},
		Probe: core.ProbeConfig{
			Disabled: envBool("LEAVE_LOOKUP_DISABLE_PROBE"),
		},
	}

	service, err := core.NewService(cfg,
		core.WithRecordStore(store),
		core.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("build lookup service: %v", err)
	}

	facade, err := leavelookup.NewFacade(service)
	if err != nil {
		log.Fatalf("build facade: %v", err)
	}

	handler, err := leavelookup.NewHandler(facade, leavelookup.WithHandlerLogger(logger))
	if err != nil {
		log.Fatalf("build handler: %v", err)
	}

	lambda.Start(handler.Handle)
}

func envOr(key string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envBool(key string) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}
