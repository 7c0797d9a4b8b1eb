package infrastructure

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"medstaff-backend/dal"
	"medstaff-backend/models"
	"medstaff-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/tidwall/gjson"
)

type TableSchema struct {
	TableName              string                 `json:"TableName"`
	AttributeDefinitions   []AttributeDefinition  `json:"AttributeDefinitions"`
	KeySchema              []KeySchemaElement     `json:"KeySchema"`
	ProvisionedThroughput  Throughput             `json:"ProvisionedThroughput"`
	GlobalSecondaryIndexes []GlobalSecondaryIndex `json:"GlobalSecondaryIndexes,omitempty"`
}

type AttributeDefinition struct {
	AttributeName string `json:"AttributeName"`
	AttributeType string `json:"AttributeType"`
}

type KeySchemaElement struct {
	AttributeName string `json:"AttributeName"`
	KeyType       string `json:"KeyType"`
}

type Throughput struct {
	ReadCapacityUnits  int64 `json:"ReadCapacityUnits"`
	WriteCapacityUnits int64 `json:"WriteCapacityUnits"`
}

type GlobalSecondaryIndex struct {
	IndexName             string             `json:"IndexName"`
	KeySchema             []KeySchemaElement `json:"KeySchema"`
	Projection            Projection         `json:"Projection"`
	ProvisionedThroughput Throughput         `json:"ProvisionedThroughput"`
}

type Projection struct {
	ProjectionType string `json:"ProjectionType"`
}

//go:embed table_schema.json
var tablesSchema []byte

// GetTables looks up the CreateTable input for a prefixed table name.
// The schema file is keyed by base table name, so "dev_professionals"
// resolves against the "professionals" entry.
func GetTables(tableName, tablePrefix string) (*dynamodb.CreateTableInput, error) {
	schemaKey := strings.TrimPrefix(tableName, tablePrefix+"_")

	tableJson := gjson.Get(string(tablesSchema), schemaKey)
	if !tableJson.Exists() {
		return nil, fmt.Errorf("table schema not found for key: %s", schemaKey)
	}

	var schema TableSchema
	if err := json.Unmarshal([]byte(tableJson.Raw), &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}

	// The stored schema key has no prefix, the live table does
	schema.TableName = tableName

	return schema.ToDynamoInput(), nil
}

// EnsureTables creates every configured table that does not exist yet.
// Existing tables are left untouched.
func EnsureTables(ctx context.Context, db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) error {
	for _, table := range cfg.Tables {
		tableName := cfg.DynamoDBTablePrefix + "_" + table

		if _, err := db.DescribeTable(ctx, tableName); err == nil {
			log.Debugf("Table %s already exists", tableName)
			continue
		}

		input, err := GetTables(tableName, cfg.DynamoDBTablePrefix)
		if err != nil {
			return err
		}

		log.Infof("Creating table %s", tableName)
		if err := db.CreateTable(ctx, input); err != nil {
			return fmt.Errorf("failed to create table %s: %w", tableName, err)
		}
	}
	return nil
}

// ToDynamoInput converts the embedded schema to a DynamoDB input
func (ts *TableSchema) ToDynamoInput() *dynamodb.CreateTableInput {
	var attrDefs []types.AttributeDefinition
	for _, a := range ts.AttributeDefinitions {
		attrDefs = append(attrDefs, types.AttributeDefinition{
			AttributeName: aws.String(a.AttributeName),
			AttributeType: types.ScalarAttributeType(a.AttributeType),
		})
	}

	var keySchema []types.KeySchemaElement
	for _, k := range ts.KeySchema {
		keySchema = append(keySchema, types.KeySchemaElement{
			AttributeName: aws.String(k.AttributeName),
			KeyType:       types.KeyType(k.KeyType),
		})
	}

	var gsis []types.GlobalSecondaryIndex
	for _, g := range ts.GlobalSecondaryIndexes {
		var gsiKeySchema []types.KeySchemaElement
		for _, k := range g.KeySchema {
			gsiKeySchema = append(gsiKeySchema, types.KeySchemaElement{
				AttributeName: aws.String(k.AttributeName),
				KeyType:       types.KeyType(k.KeyType),
			})
		}
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(g.IndexName),
			KeySchema: gsiKeySchema,
			Projection: &types.Projection{
				ProjectionType: types.ProjectionType(g.Projection.ProjectionType),
			},
			ProvisionedThroughput: &types.ProvisionedThroughput{
				ReadCapacityUnits:  aws.Int64(g.ProvisionedThroughput.ReadCapacityUnits),
				WriteCapacityUnits: aws.Int64(g.ProvisionedThroughput.WriteCapacityUnits),
			},
		})
	}

	return &dynamodb.CreateTableInput{
		TableName:            aws.String(ts.TableName),
		AttributeDefinitions: attrDefs,
		KeySchema:            keySchema,
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(ts.ProvisionedThroughput.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(ts.ProvisionedThroughput.WriteCapacityUnits),
		},
		GlobalSecondaryIndexes: gsis,
	}
}
