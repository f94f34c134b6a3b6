package credentials

import "github.com/emprops/cloudstore/pkg/provider"

// ResolveProvider reads the provider selector from the chain.
// Empty or unrecognized values default to S3.
func ResolveProvider(chain Chain) provider.Kind {
	return provider.ParseKind(chain.Lookup(EnvCloudProvider))
}

// Resolve produces fully populated credentials for kind, or a MissingError
// naming every absent required variable. Partial credentials never resolve;
// the caller must treat an error as fatal for client construction.
func Resolve(kind provider.Kind, chain Chain) (*Credentials, error) {
	creds := &Credentials{Provider: kind}

	switch kind {
	case provider.KindGCS:
		// An absent key file is not fatal: the SDK falls back to ambient
		// application default credentials.
		creds.GCS = &GCSCredentials{
			CredentialsFile: chain.Lookup(EnvGoogleCredsFile),
		}

	case provider.KindAzure:
		azure := &AzureCredentials{
			AccountName: chain.Lookup(EnvAzureAccount),
			AccountKey:  chain.LookupSecret(EnvAzureKey),
			Container:   chain.LookupAny(EnvCloudContainer, EnvAzureContainer),
		}
		var missing []string
		if azure.AccountName == "" {
			missing = append(missing, EnvAzureAccount)
		}
		if azure.AccountKey == "" {
			missing = append(missing, EnvAzureKey)
		}
		if len(missing) > 0 {
			return nil, &MissingError{Provider: kind, Vars: missing}
		}
		creds.Azure = azure

	default:
		s3 := &S3Credentials{
			AccessKeyID:     chain.Lookup(EnvAWSAccessKeyID),
			SecretAccessKey: chain.LookupSecret(EnvAWSSecretKey),
			Region:          chain.Lookup(EnvAWSRegion),
		}
		if s3.Region == "" {
			s3.Region = DefaultRegion
		}
		var missing []string
		if s3.AccessKeyID == "" {
			missing = append(missing, EnvAWSAccessKeyID)
		}
		if s3.SecretAccessKey == "" {
			missing = append(missing, EnvAWSSecretKey)
		}
		if len(missing) > 0 {
			return nil, &MissingError{Provider: kind, Vars: missing}
		}
		creds.S3 = s3
	}

	return creds, nil
}

// ResolveBucket determines the bucket/container name for kind.
//
// Precedence: explicit argument, then the provider's own override variable
// (S3_BUCKET_NAME for S3; CLOUD_STORAGE_CONTAINER before
// AZURE_STORAGE_CONTAINER for Azure, with CLOUD_STORAGE_TEST_CONTAINER
// winning over both), then the fixed default, suffixed with "-test" when
// STORAGE_TEST_MODE is enabled.
func ResolveBucket(kind provider.Kind, chain Chain, explicit string) string {
	if explicit != "" {
		return explicit
	}

	switch kind {
	case provider.KindAzure:
		if v := chain.Lookup(EnvTestContainer); v != "" {
			return v
		}
		if v := chain.LookupAny(EnvCloudContainer, EnvAzureContainer); v != "" {
			return v
		}
	case provider.KindS3:
		if v := chain.Lookup(EnvS3Bucket); v != "" {
			return v
		}
	}

	bucket := DefaultBucket
	if boolValue(chain.Lookup(EnvStorageTestMode)) {
		bucket += "-test"
	}
	return bucket
}
