package config

// Schema is the JSON schema for validating configuration files
const Schema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "bucket": {
            "type": "string",
            "description": "Target bucket name, checked by the service",
            "minLength": 1
        },
        "files": {
            "type": "string",
            "description": "Local directory holding the files to upload",
            "minLength": 1
        },
        "region": {
            "type": "string",
            "minLength": 1
        },
        "insecure_skip_verify": {
            "type": "boolean"
        },
        "virtual_hosted_style": {
            "type": "boolean"
        },
        "upload_concurrency": {
            "type": "integer",
            "minimum": 1,
            "maximum": 64
        },
        "log_level": {
            "type": "string",
            "enum": ["debug", "info", "warn", "error"]
        },
        "log_format": {
            "type": "string",
            "enum": ["json", "console"]
        }
    }
}`
