package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type PetakStackProps struct {
	awscdk.StackProps
}

func NewPetakStack(scope constructs.Construct, id string, props *PetakStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}

	stack := awscdk.NewStack(scope, &id, &stackProps)

	lambdaFn := awslambda.NewFunction(stack, jsii.String("PetakApi"), &awslambda.FunctionProps{
		Runtime:    awslambda.Runtime_PROVIDED_AL2023(),
		Handler:    jsii.String("bootstrap"),
		Code:       awslambda.Code_FromAsset(jsii.String("../dist"), nil),
		MemorySize: jsii.Number(256),
		Timeout:    awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &map[string]*string{
			"APP":             jsii.String("prod"),
			"APP_TIMEZONE":    jsii.String("Europe/Belgrade"),
			"LOG_LEVEL":       jsii.String("info"),
			"POSTGRES_DSN":    jsii.String(os.Getenv("POSTGRES_DSN")),
			"REDIS_URL":       jsii.String(os.Getenv("REDIS_URL")),
			"SESSION_SECRET":  jsii.String(os.Getenv("SESSION_SECRET")),
			"ADMIN_EMAIL":     jsii.String(os.Getenv("ADMIN_EMAIL")),
			"ADMIN_PASSWORD":  jsii.String(os.Getenv("ADMIN_PASSWORD")),
			"AWARDS_MIN_EFF":  jsii.String(envOr("AWARDS_MIN_EFF", "3")),
			"AWARDS_MIN_FORM": jsii.String(envOr("AWARDS_MIN_FORM", "3")),
		},
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("PetakApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	app := awscdk.NewApp(nil)
	NewPetakStack(app, "PetakStack", &PetakStackProps{})
	app.Synth(nil)
}
